package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Cheertaboi/storefront-checkout-service/internal/api"
	"github.com/Cheertaboi/storefront-checkout-service/internal/api/handlers"
	"github.com/Cheertaboi/storefront-checkout-service/internal/cache"
	"github.com/Cheertaboi/storefront-checkout-service/internal/payments"
	"github.com/Cheertaboi/storefront-checkout-service/internal/repository"
	"github.com/Cheertaboi/storefront-checkout-service/internal/service"
	"github.com/Cheertaboi/storefront-checkout-service/pkg/config"
	"github.com/Cheertaboi/storefront-checkout-service/pkg/logger"
	"github.com/Cheertaboi/storefront-checkout-service/pkg/metrics"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "storefront-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	processor, err := payments.NewStripeProcessor(ctx, cfg.Stripe, logg)
	if err != nil {
		logg.Error(ctx, "failed to create stripe processor", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewDiscountMetrics(reg)

	// catalog is fixed for the life of the process
	coupons := service.NewCouponService(repository.NewCouponRepo(repository.DefaultCatalog()))
	checkout := service.NewCheckoutService(coupons, processor, logg)

	handler := api.NewRouter(api.RouterParams{
		Coupons:  handlers.NewCouponHandler(coupons, m, logg),
		Checkout: handlers.NewCheckoutHandler(checkout, cache.NewCheckoutCache(cfg.Checkout.IdempotencyTTL), cfg.App.PublicURL, m, logg),
		Session:  cfg.Session,
		Logger:   logg,
		Gatherer: reg,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	// graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "http server shutdown", err)
		}
		close(idleConnsClosed)
	}()

	logg.Info(ctx, "starting storefront-api on :"+cfg.App.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(ctx, "listen", err)
		os.Exit(1)
	}

	<-idleConnsClosed
	logg.Info(ctx, "server stopped")
}
