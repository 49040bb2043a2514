package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cheertaboi/storefront-checkout-service/internal/models"
)

func item(price string, qty int64) models.LineItem {
	return models.LineItem{Title: "item", UnitPrice: dec(price), Quantity: qty}
}

func TestRedistributeEmptyCart(t *testing.T) {
	t.Parallel()

	out := Redistribute(nil, dec("25"))
	require.NotNil(t, out)
	assert.Empty(t, out)

	out = Redistribute([]models.LineItem{}, dec("25"))
	assert.Empty(t, out)
}

func TestRedistributeProportional(t *testing.T) {
	t.Parallel()

	items := []models.LineItem{item("10", 2), item("30", 1)}
	out := Redistribute(items, dec("10"))

	require.Len(t, out, 2)
	assert.Equal(t, "8.00", out[0].AdjustedUnitPrice.StringFixed(2))
	assert.Equal(t, int64(800), out[0].UnitAmount)
	assert.Equal(t, int64(2), out[0].Quantity)
	assert.Equal(t, "24.00", out[1].AdjustedUnitPrice.StringFixed(2))
	assert.Equal(t, int64(2400), out[1].UnitAmount)
	assert.False(t, out[0].Floored)
	assert.False(t, out[1].Floored)
}

func TestRedistributeRoundsMinorUnits(t *testing.T) {
	t.Parallel()

	out := Redistribute([]models.LineItem{item("10", 3)}, dec("10"))

	require.Len(t, out, 1)
	assert.Equal(t, int64(667), out[0].UnitAmount)
}

func TestRedistributeNoDiscountPassesThrough(t *testing.T) {
	t.Parallel()

	out := Redistribute([]models.LineItem{item("19.99", 1), item("5.25", 4)}, decimal.Zero)

	require.Len(t, out, 2)
	assert.Equal(t, int64(1999), out[0].UnitAmount)
	assert.Equal(t, int64(525), out[1].UnitAmount)
}

func TestRedistributeEnforcesUnitFloor(t *testing.T) {
	t.Parallel()

	out := Redistribute([]models.LineItem{item("0.60", 1)}, dec("0.55"))

	require.Len(t, out, 1)
	assert.True(t, out[0].AdjustedUnitPrice.Equal(dec("0.50")), "got %s", out[0].AdjustedUnitPrice)
	assert.Equal(t, int64(50), out[0].UnitAmount)
	assert.True(t, out[0].Floored)
}

func TestRedistributeFloorWithFullDiscount(t *testing.T) {
	t.Parallel()

	out := Redistribute([]models.LineItem{item("3", 2)}, dec("6"))

	require.Len(t, out, 1)
	assert.Equal(t, int64(50), out[0].UnitAmount)
}

func TestReconcileReportsFloorGap(t *testing.T) {
	t.Parallel()

	subtotal := dec("100.60")
	discount := dec("50.30")
	out := Redistribute([]models.LineItem{item("0.60", 1), item("100", 1)}, discount)

	require.Len(t, out, 2)
	assert.Equal(t, int64(50), out[0].UnitAmount)
	assert.Equal(t, int64(5000), out[1].UnitAmount)

	rec := Reconcile(out, subtotal, discount)
	assert.True(t, rec.FloorApplied)
	assert.Equal(t, "50.30", rec.AdvertisedTotal.StringFixed(2))
	assert.Equal(t, "50.50", rec.ChargedTotal.StringFixed(2))
	assert.Equal(t, "0.20", rec.Gap.StringFixed(2))
}

func TestReconcileWithoutFloor(t *testing.T) {
	t.Parallel()

	items := []models.LineItem{item("10", 2), item("30", 1)}
	out := Redistribute(items, dec("10"))

	rec := Reconcile(out, Subtotal(items), dec("10"))
	assert.False(t, rec.FloorApplied)
	assert.True(t, rec.Gap.IsZero())
	assert.Equal(t, "40.00", rec.ChargedTotal.StringFixed(2))
}
