// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hodu/storefront/internal/config"
	"github.com/hodu/storefront/internal/i18n"
	"github.com/hodu/storefront/internal/openmarket"
	"github.com/hodu/storefront/internal/router"
	"github.com/hodu/storefront/internal/services"
	"github.com/hodu/storefront/internal/storage"
	"github.com/hodu/storefront/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}
	utils.ConfigureLogger(os.Stderr, cfg.LogLevel, cfg.Environment)

	// Initialize i18n
	if err := i18n.Initialize(); err != nil {
		logrus.Fatal("Failed to initialize i18n: ", err)
	}
	i18n.SetDefaultLanguage(cfg.I18n.DefaultLocale)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize storage
	provider, err := storage.NewProvider(ctx, cfg)
	if err != nil {
		logrus.Fatal("Failed to initialize storage: ", err)
	}
	defer provider.Close()

	api, err := openmarket.NewClient(cfg.API.BaseURL, openmarket.WithTimeout(cfg.APITimeout()))
	if err != nil {
		logrus.Fatal("Failed to create API client: ", err)
	}

	assets, err := services.NewAssetService(cfg.AWS)
	if err != nil {
		logrus.Fatal("Failed to initialize assets: ", err)
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.Initialize(ctx, cfg, api, provider, assets)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logrus.WithFields(logrus.Fields{
			"addr":    srv.Addr,
			"api":     api.BaseURL(),
			"storage": cfg.Storage.Backend,
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatal("Failed to start server: ", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	<-ctx.Done()
	logrus.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Error("Server forced to shutdown: ", err)
	}

	logrus.Info("Server exited")
}
