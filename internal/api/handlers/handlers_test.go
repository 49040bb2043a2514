package handlers

import (
	"context"
	"time"

	"github.com/Cheertaboi/storefront-checkout-service/internal/payments"
	"github.com/Cheertaboi/storefront-checkout-service/internal/repository"
	"github.com/Cheertaboi/storefront-checkout-service/internal/service"
)

type stubProcessor struct {
	calls int
	last  payments.SessionRequest
	err   error
}

func (p *stubProcessor) CreateCheckoutSession(ctx context.Context, req payments.SessionRequest) (*payments.Session, error) {
	p.calls++
	p.last = req
	if p.err != nil {
		return nil, p.err
	}
	return &payments.Session{ID: "cs_test_123"}, nil
}

func testCouponService() *service.CouponService {
	return service.NewCouponService(
		repository.NewCouponRepo(repository.DefaultCatalog()),
		service.WithClock(func() time.Time { return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC) }),
	)
}
