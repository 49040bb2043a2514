package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/storefront-checkout-service/internal/models"
)

// DefaultCatalog is the storefront's seed coupon set.
func DefaultCatalog() []models.CouponDefinition {
	newUserExpiry := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)

	return []models.CouponDefinition{
		{
			Code:            "WELCOME10",
			Kind:            models.KindPercentage,
			Value:           decimal.NewFromInt(10),
			Description:     "10% off your first order",
			MinimumSubtotal: decimal.Zero,
			MaximumDiscount: decimal.NewFromInt(50),
			Active:          true,
		},
		{
			Code:            "SAVE20",
			Kind:            models.KindPercentage,
			Value:           decimal.NewFromInt(20),
			Description:     "20% off orders over $100",
			MinimumSubtotal: decimal.NewFromInt(100),
			MaximumDiscount: decimal.NewFromInt(100),
			Active:          true,
		},
		{
			Code:            "FLAT15",
			Kind:            models.KindFixed,
			Value:           decimal.NewFromInt(15),
			Description:     "$15 off any order",
			MinimumSubtotal: decimal.Zero,
			MaximumDiscount: decimal.NewFromInt(15),
			Active:          true,
		},
		{
			Code:            "NEWUSER",
			Kind:            models.KindPercentage,
			Value:           decimal.NewFromInt(25),
			Description:     "25% off for new users",
			MinimumSubtotal: decimal.NewFromInt(30),
			MaximumDiscount: decimal.NewFromInt(75),
			Active:          true,
			ExpiresAt:       &newUserExpiry,
		},
		{
			Code:            "FREESHIP",
			Kind:            models.KindFreeShipping,
			Value:           decimal.Zero,
			Description:     "Free shipping on any order",
			MinimumSubtotal: decimal.Zero,
			MaximumDiscount: decimal.Zero,
			Active:          true,
		},
	}
}
