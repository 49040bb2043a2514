package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/storefront-checkout-service/internal/models"
	"github.com/Cheertaboi/storefront-checkout-service/internal/repository"
)

var hundred = decimal.NewFromInt(100)

// CouponRepo resolves catalog entries by code (use interfaces to allow mocking)
type CouponRepo interface {
	GetCoupon(code string) (models.CouponDefinition, bool)
	ListCoupons() []models.CouponDefinition
}

// CouponService validates coupon codes and prices them against a subtotal.
// It holds no mutable state; the only input besides its arguments is the clock.
type CouponService struct {
	coupons CouponRepo
	now     func() time.Time
}

type Option func(*CouponService)

// WithClock replaces time.Now for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *CouponService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewCouponService(coupons CouponRepo, opts ...Option) *CouponService {
	s := &CouponService{
		coupons: coupons,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate checks code against the catalog, the clock and the order subtotal.
func (s *CouponService) Validate(code string, subtotal decimal.Decimal) models.ValidationResult {
	coupon, ok := s.coupons.GetCoupon(code)
	if !ok {
		return invalid(models.ReasonUnknownCode, "Invalid coupon code")
	}
	if !coupon.Active {
		return invalid(models.ReasonInactive, "This coupon code is no longer active")
	}
	if coupon.Expired(s.now()) {
		return invalid(models.ReasonExpired, "This coupon code has expired")
	}
	if subtotal.LessThan(coupon.MinimumSubtotal) {
		return invalid(models.ReasonBelowMinimum,
			fmt.Sprintf("Minimum order amount of $%s required for this coupon", coupon.MinimumSubtotal.String()))
	}

	return models.ValidationResult{Valid: true, Coupon: coupon}
}

// Calculate returns the discount code earns on subtotal. Rejections come back
// as a zero discount carrying the validator's reason and message.
func (s *CouponService) Calculate(code string, subtotal decimal.Decimal) models.DiscountResult {
	v := s.Validate(code, subtotal)
	if !v.Valid {
		return models.DiscountResult{
			DiscountAmount: decimal.Zero,
			AppliedCode:    repository.CanonicalCode(code),
			Reason:         v.Reason,
			Error:          v.Message,
		}
	}

	coupon := v.Coupon
	amount := decimal.Zero

	switch coupon.Kind {
	case models.KindPercentage:
		amount = subtotal.Mul(coupon.Value).Div(hundred)
		if coupon.MaximumDiscount.IsPositive() && amount.GreaterThan(coupon.MaximumDiscount) {
			amount = coupon.MaximumDiscount
		}
	case models.KindFixed:
		amount = coupon.Value
		if amount.GreaterThan(subtotal) {
			amount = subtotal
		}
	case models.KindFreeShipping:
		// shipping waiver is settled by the checkout flow, not as money off
	}

	return models.DiscountResult{
		Valid:          true,
		DiscountAmount: amount.Round(2),
		Kind:           coupon.Kind,
		Description:    coupon.Description,
		AppliedCode:    coupon.Code,
	}
}

// Available lists the coupons a shopper could redeem right now, ignoring subtotal.
func (s *CouponService) Available() []models.CouponDefinition {
	now := s.now()
	out := []models.CouponDefinition{}
	for _, c := range s.coupons.ListCoupons() {
		if c.Active && !c.Expired(now) {
			out = append(out, c)
		}
	}
	return out
}

func invalid(reason models.Reason, msg string) models.ValidationResult {
	return models.ValidationResult{Valid: false, Reason: reason, Message: msg}
}
