package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/storefront-checkout-service/internal/api/middleware"
	"github.com/Cheertaboi/storefront-checkout-service/internal/cache"
	"github.com/Cheertaboi/storefront-checkout-service/internal/models"
	"github.com/Cheertaboi/storefront-checkout-service/internal/service"
	"github.com/Cheertaboi/storefront-checkout-service/pkg/logger"
	"github.com/Cheertaboi/storefront-checkout-service/pkg/metrics"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	replayedHeader       = "Idempotent-Replayed"
)

// --- Request / Response DTOs ---

type CheckoutItemRequest struct {
	Title       string          `json:"title" validate:"max=250"`
	Description string          `json:"description" validate:"max=500"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price"`
	// Quantity accepts a number or numeric string; absent or zero means one
	Quantity json.Number `json:"quantity"`
}

type CheckoutRequest struct {
	Items      []CheckoutItemRequest `json:"items" validate:"dive"`
	CouponCode string                `json:"couponCode" validate:"max=64"`
}

type CheckoutResponse struct {
	SessionID         string  `json:"sessionId"`
	SessionURL        string  `json:"sessionUrl,omitempty"`
	DiscountApplied   bool    `json:"discountApplied"`
	DiscountAmount    float64 `json:"discountAmount"`
	OriginalSubtotal  float64 `json:"originalSubtotal"`
	FinalTotal        float64 `json:"finalTotal"`
	ChargedTotal      float64 `json:"chargedTotal"`
	PriceFloorApplied bool    `json:"priceFloorApplied"`
}

// --- Handler struct & constructor ---

type CheckoutHandler struct {
	service   *service.CheckoutService
	replays   *cache.CheckoutCache
	publicURL string
	metrics   *metrics.DiscountMetrics
	logg      *logger.Logger
}

func NewCheckoutHandler(svc *service.CheckoutService, replays *cache.CheckoutCache, publicURL string, m *metrics.DiscountMetrics, logg *logger.Logger) *CheckoutHandler {
	if logg == nil {
		logg = logger.Nop()
	}
	return &CheckoutHandler{
		service:   svc,
		replays:   replays,
		publicURL: publicURL,
		metrics:   m,
		logg:      logg,
	}
}

// --- Helpers ---

func (req CheckoutItemRequest) lineItem() models.LineItem {
	qty, err := req.Quantity.Int64()
	if err != nil || qty == 0 {
		qty = 1
	}
	return models.LineItem{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		UnitPrice:   req.Price,
		Quantity:    qty,
	}
}

func toCheckoutResponse(res models.CheckoutResult) CheckoutResponse {
	return CheckoutResponse{
		SessionID:         res.SessionID,
		SessionURL:        res.SessionURL,
		DiscountApplied:   res.DiscountApplied,
		DiscountAmount:    money(res.DiscountAmount),
		OriginalSubtotal:  money(res.OriginalSubtotal),
		FinalTotal:        money(res.FinalTotal),
		ChargedTotal:      money(res.ChargedTotal),
		PriceFloorApplied: res.PriceFloorApplied,
	}
}

// --- Handlers ---

// CreateCheckoutSession handles POST /api/checkout
func (h *CheckoutHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	key := strings.TrimSpace(r.Header.Get(idempotencyKeyHeader))
	if res, ok := h.replays.Get(key); ok {
		h.metrics.IncCheckout("replayed")
		w.Header().Set(replayedHeader, "true")
		writeJSON(w, http.StatusOK, toCheckoutResponse(res))
		return
	}

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_body",
			"details": failedFields(err),
		})
		return
	}

	items := make([]models.LineItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, it.lineItem())
	}

	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		origin = h.publicURL
	}

	res, err := h.service.CreateSession(ctx, service.CheckoutInput{
		Cart:    models.CartRequest{Items: items, CouponCode: req.CouponCode},
		Origin:  origin,
		Session: middleware.SessionFromContext(ctx),
	})
	switch {
	case errors.Is(err, service.ErrNoItems):
		h.metrics.IncCheckout("no_items")
		writeError(w, http.StatusBadRequest, "No items provided")
		return
	case errors.Is(err, service.ErrNoValidItems):
		h.metrics.IncCheckout("no_valid_items")
		writeError(w, http.StatusBadRequest, "No valid items found")
		return
	case err != nil:
		h.metrics.IncCheckout("processor_failure")
		h.logg.Error(ctx, "checkout.create_session_failed", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to create payment session",
			"details": err.Error(),
		})
		return
	}

	h.metrics.IncCheckout("created")
	h.metrics.ObserveDiscount(money(res.DiscountAmount))
	if res.PriceFloorApplied {
		h.metrics.IncPriceFloor()
	}
	h.replays.Set(key, res)

	h.logg.Info(h.logg.WithFields(ctx, map[string]any{
		"session_id":      res.SessionID,
		"discount_amount": res.DiscountAmount.StringFixed(2),
	}), "checkout.session_created")

	writeJSON(w, http.StatusOK, toCheckoutResponse(res))
}
