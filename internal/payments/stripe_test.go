package payments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cheertaboi/storefront-checkout-service/internal/models"
	"github.com/Cheertaboi/storefront-checkout-service/pkg/config"
)

func TestBuildSessionParams(t *testing.T) {
	t.Parallel()

	params := BuildSessionParams(SessionRequest{
		LineItems: []models.AdjustedLineItem{
			{LineItem: models.LineItem{Title: "Backpack", Description: "Blue", Image: "https://img.example/b.png", Quantity: 2}, UnitAmount: 2250},
			{LineItem: models.LineItem{Quantity: 1}, UnitAmount: 50},
		},
		Origin:        "https://shop.example/",
		CustomerEmail: "shopper@example.com",
		Metadata:      map[string]string{"order_id": "order_1"},
	}, "USD")

	require.Len(t, params.LineItems, 2)

	first := params.LineItems[0]
	assert.Equal(t, "usd", *first.PriceData.Currency)
	assert.Equal(t, int64(2250), *first.PriceData.UnitAmount)
	assert.Equal(t, int64(2), *first.Quantity)
	assert.Equal(t, "Backpack", *first.PriceData.ProductData.Name)
	assert.Equal(t, "Blue", *first.PriceData.ProductData.Description)
	require.Len(t, first.PriceData.ProductData.Images, 1)
	assert.Equal(t, "https://img.example/b.png", *first.PriceData.ProductData.Images[0])

	second := params.LineItems[1]
	assert.Equal(t, "Product", *second.PriceData.ProductData.Name)
	assert.Nil(t, second.PriceData.ProductData.Description)
	assert.Empty(t, second.PriceData.ProductData.Images)

	assert.Equal(t, "payment", *params.Mode)
	assert.Equal(t, "https://shop.example/checkout/success?session_id={CHECKOUT_SESSION_ID}", *params.SuccessURL)
	assert.Equal(t, "https://shop.example/cart", *params.CancelURL)
	assert.Equal(t, "shopper@example.com", *params.CustomerEmail)
	assert.True(t, *params.AllowPromotionCodes)
	assert.Equal(t, map[string]string{"order_id": "order_1"}, params.Metadata)

	require.Len(t, params.PaymentMethodTypes, 1)
	assert.Equal(t, "card", *params.PaymentMethodTypes[0])

	countries := []string{}
	for _, c := range params.ShippingAddressCollection.AllowedCountries {
		countries = append(countries, *c)
	}
	assert.Equal(t, []string{"US", "CA", "GB", "AU", "IN"}, countries)
}

func TestBuildSessionParamsAnonymous(t *testing.T) {
	t.Parallel()

	params := BuildSessionParams(SessionRequest{Origin: "https://shop.example"}, "")
	assert.Nil(t, params.CustomerEmail)
	assert.Empty(t, params.LineItems)
}

func TestNewStripeProcessor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     config.StripeConfig
		wantErr bool
		env     string
	}{
		{name: "test key", cfg: config.StripeConfig{SecretKey: "sk_test_123"}, env: "test"},
		{name: "restricted live key", cfg: config.StripeConfig{SecretKey: "rk_live_123", Env: "LIVE"}, env: "live"},
		{name: "missing key", cfg: config.StripeConfig{}, wantErr: true},
		{name: "live key in test", cfg: config.StripeConfig{SecretKey: "sk_live_123", Env: "test"}, wantErr: true},
		{name: "test key in live", cfg: config.StripeConfig{SecretKey: "sk_test_123", Env: "live"}, wantErr: true},
		{name: "unknown env", cfg: config.StripeConfig{SecretKey: "sk_test_123", Env: "staging"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NewStripeProcessor(context.Background(), tc.cfg, nil)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.env, p.Environment())
		})
	}
}
