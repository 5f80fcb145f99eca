// internal/handlers/join.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/hodu/storefront/internal/models"
	"github.com/hodu/storefront/internal/services"
	"github.com/hodu/storefront/internal/utils"
	"github.com/hodu/storefront/internal/views"
)

type JoinHandler struct {
	*Storefront
}

func NewJoinHandler(s *Storefront) *JoinHandler {
	return &JoinHandler{Storefront: s}
}

// JoinRequest is the sign-up form as the browser holds it. Absent fields are
// treated as untouched.
type JoinRequest struct {
	UserType        string  `json:"user_type" validate:"required,oneof=buyer seller"`
	Username        *string `json:"username"`
	Password        *string `json:"password"`
	PasswordConfirm *string `json:"password_confirm"`
	Name            *string `json:"name"`
	PhonePrefix     *string `json:"phone_prefix" validate:"omitempty,phone_prefix"`
	PhoneMiddle     *string `json:"phone_middle"`
	PhoneLast       *string `json:"phone_last"`
	Agree           bool    `json:"agree"`
}

func (r *JoinRequest) inputs() []struct {
	field views.Field
	value *string
} {
	return []struct {
		field views.Field
		value *string
	}{
		{views.FieldUsername, r.Username},
		{views.FieldPassword, r.Password},
		{views.FieldPasswordConfirm, r.PasswordConfirm},
		{views.FieldName, r.Name},
		{views.FieldPhonePrefix, r.PhonePrefix},
		{views.FieldPhoneMiddle, r.PhoneMiddle},
		{views.FieldPhoneLast, r.PhoneLast},
	}
}

// POST /v1/join/username
func (h *JoinHandler) CheckUsername(c *gin.Context) {
	var req JoinRequest
	if !bind(c, &req) {
		return
	}
	svc, ok := h.services(c)
	if !ok {
		return
	}
	fx := newEffects(false)
	view, kind, ok := h.fill(c, svc, fx, &req)
	if !ok {
		return
	}

	snap, err := view.CheckUsername(c.Request.Context(), kind)
	if err != nil {
		fail(c, err)
		return
	}
	utils.ViewResponse(c, snap, fx.body())
}

// POST /v1/join/validate
func (h *JoinHandler) Validate(c *gin.Context) {
	var req JoinRequest
	if !bind(c, &req) {
		return
	}
	svc, ok := h.services(c)
	if !ok {
		return
	}
	fx := newEffects(false)
	view, _, ok := h.fill(c, svc, fx, &req)
	if !ok {
		return
	}
	utils.ViewResponse(c, view.Snapshot(), fx.body())
}

// POST /v1/join
func (h *JoinHandler) Signup(c *gin.Context) {
	var req JoinRequest
	if !bind(c, &req) {
		return
	}
	svc, ok := h.services(c)
	if !ok {
		return
	}
	fx := newEffects(false)
	view, _, ok := h.fill(c, svc, fx, &req)
	if !ok {
		return
	}

	created := view.Submit(c.Request.Context())
	utils.ViewResponse(c, gin.H{
		"created": created,
		"page":    view.Snapshot(),
	}, fx.body())
}

// fill replays the submitted form into a fresh page: tab, typed fields, any
// username check that already succeeded for this client, then the agreement.
func (h *JoinHandler) fill(c *gin.Context, svc *services.Services, fx *Effects, req *JoinRequest) (*views.JoinView, models.UserType, bool) {
	kind, _ := models.ParseUserType(req.UserType)
	view := views.NewJoinView(svc, fx, fx, views.JoinOptions{Lang: utils.GetLangFromContext(c)})

	if _, err := view.SelectTab(kind); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return nil, kind, false
	}
	for _, in := range req.inputs() {
		if in.value == nil {
			continue
		}
		if _, err := view.Input(kind, in.field, *in.value); err != nil {
			utils.BadRequestResponse(c, "", err.Error())
			return nil, kind, false
		}
	}
	if err := view.RestoreChecks(c.Request.Context()); err != nil {
		fail(c, err)
		return nil, kind, false
	}
	view.SetAgreement(req.Agree)
	return view, kind, true
}
