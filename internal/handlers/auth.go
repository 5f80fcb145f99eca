// internal/handlers/auth.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/hodu/storefront/internal/models"
	"github.com/hodu/storefront/internal/utils"
	"github.com/hodu/storefront/internal/views"
)

type AuthHandler struct {
	*Storefront
}

func NewAuthHandler(s *Storefront) *AuthHandler {
	return &AuthHandler{Storefront: s}
}

type LoginRequest struct {
	UserType string `json:"user_type" validate:"omitempty,oneof=buyer seller BUYER SELLER"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// GET /v1/login
func (h *AuthHandler) GetLogin(c *gin.Context) {
	svc, ok := h.services(c)
	if !ok {
		return
	}
	fx := newEffects(false)
	view := views.NewLoginView(svc, fx, fx, views.LoginOptions{Lang: utils.GetLangFromContext(c)})

	open, err := view.Open(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if kind, ok := models.ParseUserType(c.Query("tab")); ok {
		_, _ = view.SelectTab(kind)
	}

	utils.ViewResponse(c, gin.H{
		"open": open,
		"page": view.Snapshot(),
	}, fx.body())
}

// POST /v1/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bind(c, &req) {
		return
	}

	svc, ok := h.services(c)
	if !ok {
		return
	}
	fx := newEffects(false)
	view := views.NewLoginView(svc, fx, fx, views.LoginOptions{Lang: utils.GetLangFromContext(c)})

	kind, _ := models.ParseUserType(req.UserType)
	loggedIn := view.Submit(c.Request.Context(), kind, req.Username, req.Password)

	utils.ViewResponse(c, gin.H{"logged_in": loggedIn}, fx.body())
}

// GET /v1/nav
func (h *AuthHandler) GetNavigation(c *gin.Context) {
	svc, ok := h.services(c)
	if !ok {
		return
	}
	fx := newEffects(false)
	widget := views.NewNavigationWidget(svc.Sessions, fx, views.NavigationOptions{Lang: utils.GetLangFromContext(c)})

	snap, err := widget.Render(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	utils.ViewResponse(c, snap, fx.body())
}

// POST /v1/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	svc, ok := h.services(c)
	if !ok {
		return
	}
	fx := newEffects(false)
	widget := views.NewNavigationWidget(svc.Sessions, fx, views.NavigationOptions{Lang: utils.GetLangFromContext(c)})

	snap, err := widget.Logout(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	utils.ViewResponse(c, snap, fx.body())
}
