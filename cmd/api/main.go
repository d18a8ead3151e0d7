package main

import (
	"context"
	"log"

	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/core/cache"
	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/core/config"
	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/core/logger"
	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/core/server"
	cartadapter "github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/features/cart/adapters"
	carthandler "github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/features/cart/handler"
	cartservice "github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/features/cart/service"
	checkoutadapter "github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/features/checkout/adapters"
	checkouthandler "github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/features/checkout/handler"
	checkoutservice "github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/features/checkout/service"

	"go.uber.org/zap"
)

// @title ShopVibe Storefront API
// @version 1.0
// @description Storefront session layer: per-user cart state over the commerce backend and a checkout payment orchestrator.
// @contact.name API Support
// @contact.email support@shopvibe.dev
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	// Initialize the cart backend adapter and run a health check.
	backendAdapter := cartadapter.NewBackendAdapter(cfg.Backend)
	if err := backendAdapter.HealthCheck(); err != nil {
		l.Fatal("Backend health check failed", zap.Error(err))
	}
	l.Info("Backend connection verified")

	// Initialize the finalize registry over Redis.
	redisCache, err := cache.NewRedisAdapter(cfg.Redis.URL)
	if err != nil {
		l.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	if err := redisCache.Ping(context.Background()); err != nil {
		l.Fatal("Redis health check failed", zap.Error(err))
	}
	l.Info("Redis connection verified")

	// Initialize the cart session registry and handler.
	cartManager := cartservice.NewManager(backendAdapter)
	cartHandler := carthandler.NewCartHandler(cartManager)

	// Initialize the checkout services and handler.
	orderBackend := checkoutadapter.NewOrderBackendAdapter(cfg.Backend)
	cardNetwork := checkoutadapter.NewCardNetworkAdapter(cfg.CardProvider)
	notifier := checkoutadapter.NewZapNotifier()
	registry := checkoutadapter.NewRedisFinalizeRegistry(redisCache)

	draftBuilder := checkoutservice.NewDraftBuilder(cfg.Checkout)
	orchestrator := checkoutservice.NewOrchestrator(orderBackend, cardNetwork, notifier, registry, cfg.Checkout)
	checkoutHandler := checkouthandler.NewCheckoutHandler(cartManager, draftBuilder, orchestrator)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Get("/cart", cartHandler.GetCart)
	srv.App.Get("/cart/summary", cartHandler.GetSummary)
	srv.App.Post("/cart/items", cartHandler.AddItem)
	srv.App.Put("/cart/items/:productId", cartHandler.UpdateItem)
	srv.App.Delete("/cart/items/:productId", cartHandler.RemoveItem)
	srv.App.Delete("/cart", cartHandler.SignOut)
	srv.App.Post("/checkout", checkoutHandler.PlaceOrder)
	srv.App.Post("/checkout/orders/:orderId/retry-finalize", checkoutHandler.RetryFinalize)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
