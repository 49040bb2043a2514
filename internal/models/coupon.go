package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountKind string

const (
	KindPercentage   DiscountKind = "percentage"
	KindFixed        DiscountKind = "fixed"
	KindFreeShipping DiscountKind = "shipping"
)

// CouponDefinition is one entry of the static coupon catalog.
type CouponDefinition struct {
	Code            string
	Kind            DiscountKind
	Value           decimal.Decimal
	Description     string
	MinimumSubtotal decimal.Decimal
	// MaximumDiscount of zero means uncapped
	MaximumDiscount decimal.Decimal
	Active          bool
	ExpiresAt       *time.Time
}

// Expired reports whether at is strictly after the coupon's expiry.
func (c CouponDefinition) Expired(at time.Time) bool {
	return c.ExpiresAt != nil && at.After(*c.ExpiresAt)
}
