// internal/handlers/storefront.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hodu/storefront/internal/i18n"
	"github.com/hodu/storefront/internal/services"
	"github.com/hodu/storefront/internal/storage"
	"github.com/hodu/storefront/internal/utils"
)

// Storefront builds the per-client services every handler works with. Each
// browser's storage origin is its client id.
type Storefront struct {
	api            services.OpenMarket
	provider       storage.Provider
	assets         *services.AssetService
	bannerInterval time.Duration
}

func NewStorefront(api services.OpenMarket, provider storage.Provider, assets *services.AssetService, bannerInterval time.Duration) *Storefront {
	return &Storefront{
		api:            api,
		provider:       provider,
		assets:         assets,
		bannerInterval: bannerInterval,
	}
}

// services opens the caller's origin. It writes the error response itself and
// returns false when the request has no client id.
func (s *Storefront) services(c *gin.Context) (*services.Services, bool) {
	clientID, ok := utils.GetClientIDFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, "MISSING_CLIENT", i18n.T(utils.GetLangFromContext(c), i18n.KeyInvalidRequest), nil)
		return nil, false
	}
	return services.NewServices(s.api, s.provider.Open(clientID), s.assets), true
}

// fail logs err on the request and answers 500.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	utils.InternalErrorResponse(c, "")
}

// bind decodes the JSON body into req and runs its validate tags. An empty
// body leaves req at its zero value.
func bind(c *gin.Context, req interface{}) bool {
	lang := utils.GetLangFromContext(c)

	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(req); err != nil {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyInvalidRequest), err.Error())
			return false
		}
	}

	if validationErrors := utils.GetValidationErrors(lang, utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return false
	}
	return true
}

// GET /health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"languages": i18n.GetSupportedLanguages(),
	})
}
