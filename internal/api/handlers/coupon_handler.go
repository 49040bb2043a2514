package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/storefront-checkout-service/internal/service"
	"github.com/Cheertaboi/storefront-checkout-service/pkg/logger"
	"github.com/Cheertaboi/storefront-checkout-service/pkg/metrics"
)

// --- Request / Response DTOs ---

type ValidateCouponRequest struct {
	CouponCode string   `json:"couponCode" validate:"required,max=64"`
	Subtotal   *float64 `json:"subtotal" validate:"required,gte=0"`
}

type ValidateCouponResponse struct {
	Success        bool    `json:"success"`
	CouponCode     string  `json:"couponCode"`
	DiscountAmount float64 `json:"discountAmount"`
	DiscountType   string  `json:"discountType"`
	Description    string  `json:"description"`
	NewTotal       float64 `json:"newTotal"`
}

type CouponSummary struct {
	Code            string  `json:"code"`
	DiscountType    string  `json:"discountType"`
	Description     string  `json:"description"`
	MinimumSubtotal float64 `json:"minimumSubtotal"`
}

type ListCouponsResponse struct {
	Coupons []CouponSummary `json:"coupons"`
}

// --- Handler struct & constructor ---

type CouponHandler struct {
	service *service.CouponService
	metrics *metrics.DiscountMetrics
	logg    *logger.Logger
}

func NewCouponHandler(svc *service.CouponService, m *metrics.DiscountMetrics, logg *logger.Logger) *CouponHandler {
	if logg == nil {
		logg = logger.Nop()
	}
	return &CouponHandler{service: svc, metrics: m, logg: logg}
}

// --- Helpers ---

func validateCouponMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return "invalid_body"
	}
	fe := errs[0]
	switch {
	case fe.Field() == "couponCode" && fe.Tag() == "required":
		return "Please enter a coupon code"
	case fe.Field() == "couponCode":
		return "Invalid coupon code"
	default:
		return "Invalid subtotal amount"
	}
}

// --- Handlers ---

// ValidateCoupon handles POST /api/validate-coupon
func (h *CouponHandler) ValidateCoupon(w http.ResponseWriter, r *http.Request) {
	var req ValidateCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	req.CouponCode = strings.TrimSpace(req.CouponCode)

	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validateCouponMessage(err))
		return
	}

	subtotal := decimal.NewFromFloat(*req.Subtotal)
	res := h.service.Calculate(req.CouponCode, subtotal)
	h.metrics.IncValidation(string(res.Reason))

	if !res.Valid {
		ctx := h.logg.WithFields(r.Context(), map[string]any{
			"coupon_code": req.CouponCode,
			"reason":      string(res.Reason),
		})
		h.logg.Debug(ctx, "coupon.rejected")
		writeError(w, http.StatusBadRequest, res.Error)
		return
	}

	newTotal := subtotal.Sub(res.DiscountAmount)
	if newTotal.IsNegative() {
		newTotal = decimal.Zero
	}

	writeJSON(w, http.StatusOK, ValidateCouponResponse{
		Success:        true,
		CouponCode:     res.AppliedCode,
		DiscountAmount: money(res.DiscountAmount),
		DiscountType:   string(res.Kind),
		Description:    res.Description,
		NewTotal:       money(newTotal),
	})
}

// ListCoupons handles GET /api/coupons
func (h *CouponHandler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	available := h.service.Available()
	out := make([]CouponSummary, 0, len(available))
	for _, c := range available {
		out = append(out, CouponSummary{
			Code:            c.Code,
			DiscountType:    string(c.Kind),
			Description:     c.Description,
			MinimumSubtotal: money(c.MinimumSubtotal),
		})
	}
	writeJSON(w, http.StatusOK, ListCouponsResponse{Coupons: out})
}
