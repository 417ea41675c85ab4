package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TenantType identifies which channel partner a request belongs to. The set
// is closed: at most one retailer may be provisioned per type.
type TenantType string

const (
	TenantAmazon   TenantType = "AMAZON"
	TenantFlipkart TenantType = "FLIPKART"
	TenantWalmart  TenantType = "WALMART"
	TenantZepto    TenantType = "ZEPTO"
)

var tenantDisplayNames = map[TenantType]string{
	TenantAmazon:   "Amazon",
	TenantFlipkart: "Flipkart",
	TenantWalmart:  "Walmart",
	TenantZepto:    "Zepto",
}

// DisplayName returns the external name of the tenant type, as carried in
// the X-RETAILER header.
func (t TenantType) DisplayName() string {
	return tenantDisplayNames[t]
}

// Valid reports whether t is a member of the closed tenant-type set.
func (t TenantType) Valid() bool {
	_, ok := tenantDisplayNames[t]
	return ok
}

// TenantTypeFromName maps an external tenant tag to its TenantType. The
// match is case-insensitive on the display name. An unknown tag yields
// ErrUnknownTenant, never a panic.
func TenantTypeFromName(name string) (TenantType, error) {
	for t, display := range tenantDisplayNames {
		if strings.EqualFold(display, name) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTenant, name)
}

// Retailer is a channel partner and the unit of data isolation for
// customers. The secret hash is never exposed in API responses.
type Retailer struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	TenantType TenantType `json:"type"`
	SecretHash string     `json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// RetailerRepository defines the interface for retailer persistence.
type RetailerRepository interface {
	// FindByTenantType returns the single retailer provisioned for the
	// given type. More than one match is a data-integrity fault
	// (ErrIntegrity), not a lookup miss.
	FindByTenantType(ctx context.Context, t TenantType) (*Retailer, error)
	FindByName(ctx context.Context, name string) (*Retailer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Retailer, error)
	FindAll(ctx context.Context) ([]*Retailer, error)
	Store(ctx context.Context, r *Retailer) error
	Update(ctx context.Context, r *Retailer) error
	Delete(ctx context.Context, id uuid.UUID) error
}
