package middleware

import (
	"context"

	"github.com/user/retailer-registry/internal/domain"
)

type retailerCtxKey struct{}

// WithRetailer returns a copy of ctx carrying the resolved retailer. Set by
// the tenant authentication gate on acceptance.
func WithRetailer(ctx context.Context, r *domain.Retailer) context.Context {
	return context.WithValue(ctx, retailerCtxKey{}, r)
}

// RetailerFromContext returns the retailer resolved by the tenant
// authentication gate for this request, if any.
func RetailerFromContext(ctx context.Context) (*domain.Retailer, bool) {
	r, ok := ctx.Value(retailerCtxKey{}).(*domain.Retailer)
	return r, ok
}
