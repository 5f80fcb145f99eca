// internal/handlers/catalog.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hodu/storefront/internal/services"
	"github.com/hodu/storefront/internal/utils"
	"github.com/hodu/storefront/internal/views"
)

type CatalogHandler struct {
	*Storefront
}

func NewCatalogHandler(s *Storefront) *CatalogHandler {
	return &CatalogHandler{Storefront: s}
}

// GET /v1/catalog?search=&page=
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	view := views.NewCatalogView(services.NewProductService(h.api), h.assets, views.CatalogOptions{
		Lang: utils.GetLangFromContext(c),
	})
	defer view.Close()

	snap := view.Open(c.Request.Context(), c.Request.URL.Query())
	result := utils.CreatePaginationResult(snap, int64(snap.Total), params.Page, snap.HasNext, snap.HasPrev)
	utils.PaginatedResponse(c, result, nil)
}

// GET /v1/search?keyword=
func (h *CatalogHandler) Search(c *gin.Context) {
	fx := newEffects(false)
	if target := views.SearchRedirect(c.Query("keyword")); target != "" {
		fx.Navigate(target)
	}
	utils.ViewResponse(c, gin.H{"redirect": fx.Redirect}, fx.body())
}

// GET /v1/banner?index=
func (h *CatalogHandler) GetBanner(c *gin.Context) {
	carousel := h.carousel(c)
	utils.SuccessResponse(c, carousel.Select(bannerIndex(c)))
}

// POST /v1/banner/:action?index=
func (h *CatalogHandler) MoveBanner(c *gin.Context) {
	carousel := h.carousel(c)
	carousel.Select(bannerIndex(c))

	switch c.Param("action") {
	case "next":
		utils.SuccessResponse(c, carousel.Next())
	case "prev":
		utils.SuccessResponse(c, carousel.Prev())
	case "select":
		target, err := strconv.Atoi(c.Query("to"))
		if err != nil {
			utils.BadRequestResponse(c, "", "to must be a slide index")
			return
		}
		utils.SuccessResponse(c, carousel.Select(target))
	default:
		utils.NotFoundResponse(c, "unknown banner action")
	}
}

func (h *CatalogHandler) carousel(c *gin.Context) *views.Carousel {
	return views.NewCarousel(h.assets.BannerSlides(), views.CarouselOptions{
		Interval: h.bannerInterval,
		Lang:     utils.GetLangFromContext(c),
	})
}

func bannerIndex(c *gin.Context) int {
	i, _ := strconv.Atoi(c.Query("index"))
	return i
}
