package service

import (
	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/storefront-checkout-service/internal/models"
)

// Processor floors: no unit may be charged below 50 cents.
var (
	MinimumUnitPrice        = decimal.New(50, -2)
	MinimumUnitAmount int64 = 50
)

// Redistribute spreads an order-level discount over items in proportion to
// each line's share of the subtotal, for processors that accept neither
// negative lines nor an order discount line. Items must already have a
// positive unit price and a quantity of at least one.
//
// The per-unit floor makes this lossy: when it binds, the adjusted lines sum
// to more than subtotal minus discount. See Reconcile.
func Redistribute(items []models.LineItem, discountAmount decimal.Decimal) []models.AdjustedLineItem {
	out := make([]models.AdjustedLineItem, 0, len(items))

	subtotal := Subtotal(items)
	ratio := decimal.Zero
	if !subtotal.IsZero() {
		ratio = discountAmount.Div(subtotal)
	}

	for _, it := range items {
		qty := decimal.NewFromInt(it.Quantity)
		perUnit := it.Total().Mul(ratio).Div(qty)

		adjusted := it.UnitPrice.Sub(perUnit)
		floored := false
		if adjusted.LessThan(MinimumUnitPrice) {
			adjusted = MinimumUnitPrice
			floored = true
		}

		unitAmount := adjusted.Mul(hundred).Round(0).IntPart()
		if unitAmount < MinimumUnitAmount {
			unitAmount = MinimumUnitAmount
			floored = true
		}

		out = append(out, models.AdjustedLineItem{
			LineItem:          it,
			AdjustedUnitPrice: adjusted,
			UnitAmount:        unitAmount,
			Floored:           floored,
		})
	}
	return out
}

// Subtotal sums unit price times quantity.
func Subtotal(items []models.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Total())
	}
	return total
}

// Reconciliation compares what the shopper was told against what the
// processor will charge for a set of adjusted lines.
type Reconciliation struct {
	AdvertisedTotal decimal.Decimal
	ChargedTotal    decimal.Decimal
	Gap             decimal.Decimal
	FloorApplied    bool
}

func Reconcile(items []models.AdjustedLineItem, originalSubtotal, discountAmount decimal.Decimal) Reconciliation {
	charged := decimal.Zero
	floor := false
	for _, it := range items {
		charged = charged.Add(decimal.New(it.UnitAmount, -2).Mul(decimal.NewFromInt(it.Quantity)))
		if it.Floored {
			floor = true
		}
	}
	advertised := originalSubtotal.Sub(discountAmount)
	return Reconciliation{
		AdvertisedTotal: advertised,
		ChargedTotal:    charged,
		Gap:             charged.Sub(advertised),
		FloorApplied:    floor,
	}
}
