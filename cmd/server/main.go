package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopfront-be/internal/cart"
	"shopfront-be/internal/catalog"
	"shopfront-be/internal/config"
	"shopfront-be/internal/db"
	"shopfront-be/internal/httpapi"
	"shopfront-be/internal/logger"
	"shopfront-be/internal/metrics"
	"shopfront-be/internal/order"
	"shopfront-be/internal/payment"
	"shopfront-be/internal/pricing"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	if cfg.StripeWebhookSecret == "" {
		log.Warn("STRIPE_WEBHOOK_SECRET is empty, webhook signature verification is disabled")
	}

	database := db.InitDB(cfg)
	defer database.Close()

	catalogRepo := catalog.NewRepository(database)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo)

	engine := pricing.NewEngine()

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, catalogRepo, engine)

	gateway := payment.NewStripeGateway(
		cfg.StripeSecretKey,
		cfg.StripeWebhookSecret,
		cfg.SuccessURL,
		cfg.CancelURL,
	)
	stats := &metrics.Reconciliation{}
	paymentRepo := payment.NewRepository(database)
	reconciler := payment.NewReconciler(paymentRepo, orderRepo, gateway, stats)

	router := httpapi.NewRouter(httpapi.Deps{
		Carts:      cartSvc,
		Orders:     orderSvc,
		OrderRepo:  orderRepo,
		Catalog:    catalogRepo,
		Reconciler: reconciler,
		Gateway:    gateway,
		Stats:      stats,
		JWTSecret:  []byte(cfg.JWTSecret),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("port", cfg.AppPort), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
