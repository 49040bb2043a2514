package models

import "github.com/shopspring/decimal"

type LineItem struct {
	Title       string
	Description string
	Image       string
	UnitPrice   decimal.Decimal
	Quantity    int64
}

// Total is unit price times quantity.
func (li LineItem) Total() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(li.Quantity))
}

// AdjustedLineItem is a line item priced for submission to the payment processor.
type AdjustedLineItem struct {
	LineItem
	AdjustedUnitPrice decimal.Decimal
	// UnitAmount is AdjustedUnitPrice in minor units
	UnitAmount int64
	// Floored is set when the 50 cent minimum replaced the computed price
	Floored bool
}

// CartRequest is what a checkout submits: the cart contents plus an optional coupon.
type CartRequest struct {
	Items      []LineItem
	CouponCode string
}
