package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/storefront-checkout-service/internal/models"
	"github.com/Cheertaboi/storefront-checkout-service/internal/payments"
	"github.com/Cheertaboi/storefront-checkout-service/pkg/logger"
)

var (
	ErrNoItems          = errors.New("no items provided")
	ErrNoValidItems     = errors.New("no valid items found")
	ErrProcessorFailure = errors.New("payment processor failure")
)

type PaymentProcessor interface {
	CreateCheckoutSession(ctx context.Context, req payments.SessionRequest) (*payments.Session, error)
}

type CheckoutInput struct {
	Cart    models.CartRequest
	Origin  string
	Session models.Session
}

// CheckoutService prices a cart and opens a payment session for it.
type CheckoutService struct {
	coupons   *CouponService
	processor PaymentProcessor
	logg      *logger.Logger
	newID     func() string
}

func NewCheckoutService(coupons *CouponService, processor PaymentProcessor, logg *logger.Logger) *CheckoutService {
	if logg == nil {
		logg = logger.Nop()
	}
	return &CheckoutService{
		coupons:   coupons,
		processor: processor,
		logg:      logg,
		newID:     uuid.NewString,
	}
}

// PurchasableItems keeps the items a processor can charge for.
func PurchasableItems(items []models.LineItem) []models.LineItem {
	out := make([]models.LineItem, 0, len(items))
	for _, it := range items {
		if it.UnitPrice.IsPositive() && it.Quantity >= 1 {
			out = append(out, it)
		}
	}
	return out
}

func (s *CheckoutService) CreateSession(ctx context.Context, in CheckoutInput) (models.CheckoutResult, error) {
	if len(in.Cart.Items) == 0 {
		return models.CheckoutResult{}, ErrNoItems
	}

	items := PurchasableItems(in.Cart.Items)
	if len(items) == 0 {
		return models.CheckoutResult{}, ErrNoValidItems
	}

	subtotal := Subtotal(items)
	discount := decimal.Zero
	couponCode := strings.TrimSpace(in.Cart.CouponCode)
	appliedCode := ""

	if couponCode != "" {
		res := s.coupons.Calculate(couponCode, subtotal)
		if res.Valid {
			discount = res.DiscountAmount
			appliedCode = res.AppliedCode
		} else {
			// checkout proceeds at full price
			s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
				"coupon_code": couponCode,
				"reason":      string(res.Reason),
			}), "checkout.coupon_ignored")
		}
	}

	adjusted := Redistribute(items, discount)
	rec := Reconcile(adjusted, subtotal, discount)
	if rec.FloorApplied {
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
			"advertised_total": rec.AdvertisedTotal.StringFixed(2),
			"charged_total":    rec.ChargedTotal.StringFixed(2),
			"gap":              rec.Gap.StringFixed(2),
		}), "checkout.price_floor_applied")
	}

	metadata := map[string]string{
		"order_id":          "order_" + s.newID(),
		"coupon_code":       couponCode,
		"original_subtotal": subtotal.StringFixed(2),
		"discount_amount":   discount.StringFixed(2),
	}
	if !in.Session.Anonymous() {
		metadata["user_id"] = in.Session.UserID
	}

	sess, err := s.processor.CreateCheckoutSession(ctx, payments.SessionRequest{
		LineItems:     adjusted,
		Origin:        in.Origin,
		CustomerEmail: in.Session.Email,
		Metadata:      metadata,
	})
	if err != nil {
		return models.CheckoutResult{}, errors.Wrap(ErrProcessorFailure, err.Error())
	}

	return models.CheckoutResult{
		SessionID:         sess.ID,
		SessionURL:        sess.URL,
		CouponCode:        appliedCode,
		DiscountApplied:   discount.IsPositive(),
		DiscountAmount:    discount,
		OriginalSubtotal:  subtotal,
		FinalTotal:        subtotal.Sub(discount),
		ChargedTotal:      rec.ChargedTotal,
		PriceFloorApplied: rec.FloorApplied,
	}, nil
}
