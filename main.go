package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"poshak-shop/config"
	"poshak-shop/controllers"
	_ "poshak-shop/docs"
	"poshak-shop/libs"
	"poshak-shop/middleware"
	"poshak-shop/models"
	"poshak-shop/repositories"
	"poshak-shop/routes"
	"poshak-shop/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title Poshak Shop API
// @version 1.0
// @description Storefront backend for a Bengali clothing shop, backed by a spreadsheet API.
// @BasePath /api/v1
func main() {
	config.LoadConfig()

	if config.AppConfig.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	logger := newLogger(config.AppConfig.AppEnv)
	defer logger.Sync()

	if config.AppConfig.SheetAPIURL == "" {
		log.Fatalf("SHEET_API_URL is required")
	}

	store, err := repositories.NewLocalStore(config.AppConfig.StateDir, logger)
	if err != nil {
		log.Fatalf("Failed to prepare state directory: %v", err)
	}

	cache := models.NewRedisClient()
	if cache != nil {
		defer cache.Close()
	}

	mailer, err := models.NewEmailService()
	if err != nil {
		logger.Info("order confirmation emails disabled", zap.Error(err))
		mailer = nil
	}

	sheets := libs.NewSheetClient(config.AppConfig.SheetAPIURL, config.AppConfig.SheetAPITimeout, logger)
	catalog := services.NewCatalogService(sheets, store, logger)
	cart := services.NewCartService(store, logger)
	checkout := services.NewCheckoutService(cart, sheets, store, mailer, logger)

	catalog.OnUpdate(func() { cart.Reconcile(catalog.Products()) })

	if !catalog.LoadCached() {
		ctx, cancel := context.WithTimeout(context.Background(), config.AppConfig.SheetAPITimeout)
		if _, err := catalog.Refresh(ctx); err != nil {
			logger.Warn("initial catalog fetch failed, starting empty", zap.Error(err))
		}
		cancel()
	}

	cart.Load()
	cart.Reconcile(catalog.Products())

	watcher, err := repositories.NewCartWatcher(store, cart.ReloadFromStorage, logger)
	if err != nil {
		logger.Warn("cart watcher unavailable", zap.Error(err))
	} else if err := watcher.Start(); err != nil {
		logger.Warn("cart watcher failed to start", zap.Error(err))
	} else {
		defer watcher.Stop()
	}

	productCtrl := controllers.NewProductController(catalog, cache, logger)
	cartCtrl := controllers.NewCartController(cart, catalog, logger)
	checkoutCtrl := controllers.NewCheckoutController(checkout, logger)
	prefCtrl := controllers.NewPreferenceController(store, logger)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.CORSMiddleware(), middleware.RequestLogger(logger))
	routes.SetupRoutes(router, productCtrl, cartCtrl, checkoutCtrl, prefCtrl)

	port := ":" + config.AppConfig.Port
	server := &http.Server{Addr: port, Handler: router}

	go func() {
		log.Printf("Server starting on port %s", port)
		log.Printf("Environment: %s", config.AppConfig.AppEnv)
		log.Printf("Swagger UI: http://localhost:%s/swagger/index.html", config.AppConfig.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shut down", zap.Error(err))
	}
}

func newLogger(env string) *zap.Logger {
	var logger *zap.Logger
	var err error
	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	return logger
}
