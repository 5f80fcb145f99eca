// internal/router/router.go
package router

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/hodu/storefront/internal/config"
	"github.com/hodu/storefront/internal/handlers"
	"github.com/hodu/storefront/internal/middleware"
	"github.com/hodu/storefront/internal/services"
	"github.com/hodu/storefront/internal/storage"
)

// Initialize wires the storefront routes. ctx bounds the rate limiters'
// background cleanup.
func Initialize(ctx context.Context, cfg *config.Config, api services.OpenMarket, provider storage.Provider, assets *services.AssetService) *gin.Engine {
	storefront := handlers.NewStorefront(api, provider, assets, cfg.UI.BannerInterval())

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(storefront)
	productHandler := handlers.NewProductHandler(storefront)
	authHandler := handlers.NewAuthHandler(storefront)
	joinHandler := handlers.NewJoinHandler(storefront)
	cartHandler := handlers.NewCartHandler(storefront)

	generalLimiter := middleware.GeneralRateLimiter(cfg.RateLimit)
	authLimiter := middleware.AuthRateLimiter(cfg.RateLimit)
	go generalLimiter.Run(ctx)
	go authLimiter.Run(ctx)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.ClientSession(cfg.Server.CookieSecure))
	r.Use(middleware.RequestLogger())
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))
	r.Use(generalLimiter.Middleware())

	r.GET("/health", handlers.Health)

	v1 := r.Group("/v1")
	{
		v1.GET("/catalog", catalogHandler.GetCatalog)
		v1.GET("/search", catalogHandler.Search)
		v1.GET("/banner", catalogHandler.GetBanner)
		v1.POST("/banner/:action", catalogHandler.MoveBanner)

		products := v1.Group("/products")
		{
			products.GET("/:id", productHandler.GetProduct)
			products.POST("/:id/cart", productHandler.AddToCart)
			products.POST("/:id/buy", productHandler.BuyNow)
		}

		v1.GET("/login", authHandler.GetLogin)
		v1.POST("/login", authLimiter.Middleware(), authHandler.Login)
		v1.GET("/nav", authHandler.GetNavigation)
		v1.POST("/logout", authHandler.Logout)

		join := v1.Group("/join")
		{
			join.POST("", authLimiter.Middleware(), joinHandler.Signup)
			join.POST("/username", authLimiter.Middleware(), joinHandler.CheckUsername)
			join.POST("/validate", joinHandler.Validate)
		}

		v1.GET("/cart", cartHandler.GetCart)
		v1.GET("/purchase", cartHandler.GetPurchase)
	}

	return r
}
