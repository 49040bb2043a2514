package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Cheertaboi/storefront-checkout-service/internal/api/handlers"
	"github.com/Cheertaboi/storefront-checkout-service/internal/api/middleware"
	"github.com/Cheertaboi/storefront-checkout-service/pkg/config"
	"github.com/Cheertaboi/storefront-checkout-service/pkg/logger"
)

type RouterParams struct {
	Coupons  *handlers.CouponHandler
	Checkout *handlers.CheckoutHandler
	Session  config.SessionConfig
	Logger   *logger.Logger
	// Gatherer backs /metrics; nil leaves the endpoint unmounted
	Gatherer prometheus.Gatherer
}

// NewRouter builds the HTTP router for the storefront api
func NewRouter(p RouterParams) http.Handler {
	logg := p.Logger
	if logg == nil {
		logg = logger.Nop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID(logg))
	r.Use(middleware.Logger(logg))
	r.Use(middleware.Recoverer(logg))

	r.Route("/api", func(r chi.Router) {
		r.Get("/coupons", p.Coupons.ListCoupons)
		r.Post("/validate-coupon", p.Coupons.ValidateCoupon)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(p.Session, logg))
			r.Post("/checkout", p.Checkout.CreateCheckoutSession)
		})
	})

	if p.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}

	// health
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
