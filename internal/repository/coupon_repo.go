package repository

import (
	"sort"
	"strings"

	"github.com/Cheertaboi/storefront-checkout-service/internal/models"
)

// CouponRepo serves coupon definitions from an in-memory catalog that is
// fixed at construction. It is safe for concurrent use.
type CouponRepo struct {
	coupons map[string]models.CouponDefinition
}

func NewCouponRepo(defs []models.CouponDefinition) *CouponRepo {
	coupons := make(map[string]models.CouponDefinition, len(defs))
	for _, d := range defs {
		code := CanonicalCode(d.Code)
		d.Code = code
		if d.ExpiresAt != nil {
			exp := *d.ExpiresAt
			d.ExpiresAt = &exp
		}
		coupons[code] = d
	}
	return &CouponRepo{coupons: coupons}
}

// CanonicalCode is the catalog key for a user supplied code.
func CanonicalCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (r *CouponRepo) GetCoupon(code string) (models.CouponDefinition, bool) {
	c, ok := r.coupons[CanonicalCode(code)]
	if ok && c.ExpiresAt != nil {
		exp := *c.ExpiresAt
		c.ExpiresAt = &exp
	}
	return c, ok
}

// ListCoupons returns every definition ordered by code.
func (r *CouponRepo) ListCoupons() []models.CouponDefinition {
	out := make([]models.CouponDefinition, 0, len(r.coupons))
	for code := range r.coupons {
		c, _ := r.GetCoupon(code)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
