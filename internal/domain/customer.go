package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Customer is a record owned by exactly one retailer. The retailer ID is set
// from the authenticated tenant at creation and never changes afterwards.
// Login names are unique within the owning retailer's scope only.
type Customer struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name,omitempty"`
	DateOfBirth string    `json:"dob"`
	LoginName   string    `json:"login_name"`
	RetailerID  uuid.UUID `json:"retailer_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CustomerRepository defines the interface for customer persistence. Every
// read, update, and delete is keyed by (retailerID, id) so a valid secret
// for one retailer can never touch another retailer's customer.
type CustomerRepository interface {
	FindByRetailerAndID(ctx context.Context, retailerID, id uuid.UUID) (*Customer, error)
	FindByRetailerAndLoginName(ctx context.Context, retailerID uuid.UUID, loginName string) (*Customer, error)
	FindByRetailer(ctx context.Context, retailerID uuid.UUID) ([]*Customer, error)
	// ExistsForRetailer reports whether any customer still references the
	// retailer. Used by the referential guard on retailer deletion.
	ExistsForRetailer(ctx context.Context, retailerID uuid.UUID) (bool, error)
	Store(ctx context.Context, c *Customer) error
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, retailerID, id uuid.UUID) error
}
