package models

import "github.com/shopspring/decimal"

// CheckoutResult summarises a payment session opened for a cart.
type CheckoutResult struct {
	SessionID        string
	SessionURL       string
	CouponCode       string
	DiscountApplied  bool
	DiscountAmount   decimal.Decimal
	OriginalSubtotal decimal.Decimal
	// FinalTotal is OriginalSubtotal minus DiscountAmount, the total shown to the shopper.
	FinalTotal decimal.Decimal
	// ChargedTotal is what the processor will collect, from the submitted line items.
	ChargedTotal      decimal.Decimal
	PriceFloorApplied bool
}
