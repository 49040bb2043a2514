package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DiscountMetrics counts coupon validations and checkout sessions.
// A nil *DiscountMetrics is valid and records nothing.
type DiscountMetrics struct {
	validations *prometheus.CounterVec
	checkouts   *prometheus.CounterVec
	discounts   prometheus.Histogram
	floorHits   prometheus.Counter
}

// NewDiscountMetrics registers the storefront metrics on the provided registerer.
func NewDiscountMetrics(reg prometheus.Registerer) *DiscountMetrics {
	if reg == nil {
		return &DiscountMetrics{}
	}
	validations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "coupon_validations_total",
		Help: "Coupon validations by result.",
	}, []string{"result"})
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_sessions_total",
		Help: "Checkout session attempts by outcome.",
	}, []string{"outcome"})
	discounts := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_discount_amount",
		Help:    "Discount granted per checkout session, in currency units.",
		Buckets: []float64{1, 5, 10, 15, 25, 50, 75, 100},
	})
	floorHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_price_floor_total",
		Help: "Checkout sessions where the per-unit price floor raised the charged total.",
	})
	reg.MustRegister(validations, checkouts, discounts, floorHits)
	return &DiscountMetrics{
		validations: validations,
		checkouts:   checkouts,
		discounts:   discounts,
		floorHits:   floorHits,
	}
}

// IncValidation records one validation; an empty result means the code was accepted.
func (m *DiscountMetrics) IncValidation(result string) {
	if m == nil || m.validations == nil {
		return
	}
	m.validations.WithLabelValues(normalizeLabel(result, "valid")).Inc()
}

func (m *DiscountMetrics) IncCheckout(outcome string) {
	if m == nil || m.checkouts == nil {
		return
	}
	m.checkouts.WithLabelValues(normalizeLabel(outcome, "unknown")).Inc()
}

func (m *DiscountMetrics) ObserveDiscount(amount float64) {
	if m == nil || m.discounts == nil {
		return
	}
	m.discounts.Observe(amount)
}

func (m *DiscountMetrics) IncPriceFloor() {
	if m == nil || m.floorHits == nil {
		return
	}
	m.floorHits.Inc()
}

func normalizeLabel(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
