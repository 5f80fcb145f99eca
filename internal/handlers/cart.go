// internal/handlers/cart.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hodu/storefront/internal/i18n"
	"github.com/hodu/storefront/internal/services"
	"github.com/hodu/storefront/internal/utils"
)

type CartHandler struct {
	*Storefront
}

func NewCartHandler(s *Storefront) *CartHandler {
	return &CartHandler{Storefront: s}
}

// GET /v1/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	svc, ok := h.services(c)
	if !ok {
		return
	}

	cart, err := svc.Cart.Load(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	utils.SuccessResponse(c, cart)
}

// GET /v1/purchase
func (h *CartHandler) GetPurchase(c *gin.Context) {
	svc, ok := h.services(c)
	if !ok {
		return
	}

	draft, err := svc.Purchase.Current(c.Request.Context())
	if errors.Is(err, services.ErrNoPurchaseDraft) {
		utils.NotFoundResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyPurchaseEmpty))
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{
		"products": draft.Products,
		"total":    draft.Total(),
	})
}
