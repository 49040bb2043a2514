package models

import "github.com/shopspring/decimal"

// Reason classifies why a coupon was rejected.
type Reason string

const (
	ReasonNone         Reason = ""
	ReasonUnknownCode  Reason = "unknown_code"
	ReasonInactive     Reason = "inactive"
	ReasonExpired      Reason = "expired"
	ReasonBelowMinimum Reason = "below_minimum"
)

type ValidationResult struct {
	Valid   bool
	Reason  Reason
	Message string
	Coupon  CouponDefinition
}

// DiscountResult is always well formed; on failure DiscountAmount is zero and
// Reason/Error describe the rejection.
type DiscountResult struct {
	Valid          bool
	DiscountAmount decimal.Decimal
	Kind           DiscountKind
	Description    string
	AppliedCode    string
	Reason         Reason
	Error          string
}
