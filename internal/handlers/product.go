// internal/handlers/product.go
package handlers

import (
	"context"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/hodu/storefront/internal/services"
	"github.com/hodu/storefront/internal/utils"
	"github.com/hodu/storefront/internal/views"
)

type ProductHandler struct {
	*Storefront
}

func NewProductHandler(s *Storefront) *ProductHandler {
	return &ProductHandler{Storefront: s}
}

// ProductActionRequest is the detail page state a cart or buy click happens in.
type ProductActionRequest struct {
	Quantity *int `json:"quantity"`
	// Confirm answers every confirm prompt the action raises.
	Confirm bool `json:"confirm"`
}

// GET /v1/products/:id?quantity=&tab=
func (h *ProductHandler) GetProduct(c *gin.Context) {
	svc, ok := h.services(c)
	if !ok {
		return
	}
	fx := newEffects(false)

	view, snap, ok := h.open(c, svc, fx)
	if !ok {
		return
	}

	if raw := c.Query("quantity"); raw != "" {
		snap = view.EnterQuantity(raw)
	}
	if tab := c.Query("tab"); tab != "" {
		var err error
		if snap, err = view.SelectTab(tab); err != nil {
			utils.BadRequestResponse(c, "", err.Error())
			return
		}
	}
	utils.ViewResponse(c, snap, fx.body())
}

// POST /v1/products/:id/cart
func (h *ProductHandler) AddToCart(c *gin.Context) {
	h.act(c, (*views.DetailView).AddToCart)
}

// POST /v1/products/:id/buy
func (h *ProductHandler) BuyNow(c *gin.Context) {
	h.act(c, (*views.DetailView).BuyNow)
}

func (h *ProductHandler) act(c *gin.Context, action func(*views.DetailView, context.Context) error) {
	var req ProductActionRequest
	if !bind(c, &req) {
		return
	}

	svc, ok := h.services(c)
	if !ok {
		return
	}
	fx := newEffects(req.Confirm)

	view, snap, ok := h.open(c, svc, fx)
	if !ok {
		return
	}
	if req.Quantity != nil {
		snap = view.RestoreQuantity(*req.Quantity)
	}

	if err := action(view, c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	utils.ViewResponse(c, snap, fx.body())
}

// open loads the product page. A product that cannot be shown is not an HTTP
// error: the response carries the alert and redirect the page would produce.
func (h *ProductHandler) open(c *gin.Context, svc *services.Services, fx *Effects) (*views.DetailView, views.DetailSnapshot, bool) {
	view := views.NewDetailView(svc, fx, fx, views.DetailOptions{
		Lang: utils.GetLangFromContext(c),
	})

	snap, err := view.Open(c.Request.Context(), url.Values{"id": {c.Param("id")}})
	if err != nil {
		utils.ViewResponse(c, snap, fx.body())
		return nil, snap, false
	}
	return view, snap, true
}
