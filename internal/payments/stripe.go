package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v82"

	"github.com/Cheertaboi/storefront-checkout-service/internal/models"
	"github.com/Cheertaboi/storefront-checkout-service/pkg/config"
	"github.com/Cheertaboi/storefront-checkout-service/pkg/logger"
)

const (
	testEnv = "test"
	liveEnv = "live"

	defaultCurrency    = "usd"
	defaultProductName = "Product"
)

// Countries the hosted checkout collects shipping addresses for.
var ShippingCountries = []string{"US", "CA", "GB", "AU", "IN"}

var (
	errAPIKeyRequired   = errors.New("stripe secret key is required")
	errInvalidStripeEnv = fmt.Errorf("stripe environment must be %q or %q", testEnv, liveEnv)
)

// SessionRequest is everything needed to open a hosted checkout page.
type SessionRequest struct {
	LineItems     []models.AdjustedLineItem
	Origin        string
	CustomerEmail string
	Metadata      map[string]string
}

type Session struct {
	ID  string
	URL string
}

// StripeProcessor opens Stripe Checkout sessions.
type StripeProcessor struct {
	api         *stripe.Client
	environment string
	currency    string
	logg        *logger.Logger
}

func NewStripeProcessor(ctx context.Context, cfg config.StripeConfig, logg *logger.Logger) (*StripeProcessor, error) {
	env, err := normalizeEnv(cfg.Environment())
	if err != nil {
		return nil, err
	}

	apiKey := strings.TrimSpace(cfg.SecretKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}
	if err := validateAPIKey(env, apiKey); err != nil {
		return nil, err
	}

	if logg != nil {
		logg.Info(ctx, fmt.Sprintf("stripe client initialized (%s)", env))
	}

	return &StripeProcessor{
		api:         stripe.NewClient(apiKey),
		environment: env,
		currency:    normalizeCurrency(cfg.Currency),
		logg:        logg,
	}, nil
}

// Environment reports the normalized Stripe environment in use.
func (p *StripeProcessor) Environment() string {
	if p == nil {
		return ""
	}
	return p.environment
}

func (p *StripeProcessor) CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error) {
	params := BuildSessionParams(req, p.currency)

	sess, err := p.api.V1CheckoutSessions.Create(ctx, params)
	if err != nil {
		if p.logg != nil {
			p.logg.Error(ctx, "stripe.checkout_session.create_failed", err)
		}
		return nil, err
	}
	return &Session{ID: sess.ID, URL: sess.URL}, nil
}

// BuildSessionParams maps adjusted line items onto a one-off card payment session.
func BuildSessionParams(req SessionRequest, currency string) *stripe.CheckoutSessionCreateParams {
	currency = normalizeCurrency(currency)
	origin := strings.TrimRight(req.Origin, "/")

	lineItems := make([]*stripe.CheckoutSessionCreateLineItemParams, 0, len(req.LineItems))
	for _, it := range req.LineItems {
		name := strings.TrimSpace(it.Title)
		if name == "" {
			name = defaultProductName
		}
		product := &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
			Name: stripe.String(name),
		}
		if it.Description != "" {
			product.Description = stripe.String(it.Description)
		}
		if it.Image != "" {
			product.Images = stripe.StringSlice([]string{it.Image})
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionCreateLineItemParams{
			PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
				Currency:    stripe.String(currency),
				ProductData: product,
				UnitAmount:  stripe.Int64(it.UnitAmount),
			},
			Quantity: stripe.Int64(it.Quantity),
		})
	}

	params := &stripe.CheckoutSessionCreateParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(origin + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:          stripe.String(origin + "/cart"),
		Metadata:           req.Metadata,
		ShippingAddressCollection: &stripe.CheckoutSessionCreateShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice(ShippingCountries),
		},
		AllowPromotionCodes: stripe.Bool(true),
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	return params
}

func normalizeCurrency(raw string) string {
	c := strings.ToLower(strings.TrimSpace(raw))
	if c == "" {
		return defaultCurrency
	}
	return c
}

func normalizeEnv(raw string) (string, error) {
	env := strings.TrimSpace(strings.ToLower(raw))
	if env == "" {
		env = testEnv
	}
	switch env {
	case testEnv, liveEnv:
		return env, nil
	default:
		return "", errInvalidStripeEnv
	}
}

func validateAPIKey(env, key string) error {
	switch env {
	case testEnv:
		if strings.HasPrefix(key, "sk_test") || strings.HasPrefix(key, "rk_test") {
			return nil
		}
		return fmt.Errorf("stripe environment %q requires a test secret key (sk_test/rk_test)", testEnv)
	case liveEnv:
		if strings.HasPrefix(key, "sk_live") || strings.HasPrefix(key, "rk_live") {
			return nil
		}
		return fmt.Errorf("stripe environment %q requires a live secret key (sk_live/rk_live)", liveEnv)
	default:
		return errInvalidStripeEnv
	}
}
