package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/user/retailer-registry/internal/domain"
)

// CustomerUseCase defines the contract for tenant-scoped customer
// operations. Every method takes the retailer resolved by the
// authentication gate explicitly; no ambient request state is consulted.
type CustomerUseCase interface {
	Create(ctx context.Context, tenant *domain.Retailer, req CustomerRequest) (*CustomerResponse, error)
	Get(ctx context.Context, tenant *domain.Retailer, id uuid.UUID) (*CustomerResponse, error)
	List(ctx context.Context, tenant *domain.Retailer) ([]*CustomerResponse, error)
	Update(ctx context.Context, tenant *domain.Retailer, id uuid.UUID, req CustomerRequest) (*CustomerResponse, error)
	Delete(ctx context.Context, tenant *domain.Retailer, id uuid.UUID) error
}

// RetailerAdminUseCase defines the contract for the admin retailer surface.
type RetailerAdminUseCase interface {
	Create(ctx context.Context, req RetailerRequest) (*RetailerResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*RetailerResponse, error)
	List(ctx context.Context) ([]*RetailerResponse, error)
	Update(ctx context.Context, id uuid.UUID, req RetailerRequest) (*RetailerResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CustomerRequest carries customer data for create and update operations.
// The owning retailer is never part of the payload; it comes from the
// resolved tenant context.
type CustomerRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name,omitempty"`
	DateOfBirth string `json:"dob"`
	LoginName   string `json:"login_name"`
}

// CustomerResponse is the customer payload returned to callers.
type CustomerResponse struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name,omitempty"`
	DateOfBirth string    `json:"dob"`
	LoginName   string    `json:"login_name"`
	RetailerID  uuid.UUID `json:"retailer_id"`
}

// RetailerRequest carries retailer data for admin create and update
// operations. APIKey is the plaintext shared secret; it is hashed before
// storage and never echoed back. On update, a blank APIKey keeps the
// current secret.
type RetailerRequest struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	APIKey string `json:"api_key"`
}

// RetailerResponse is the retailer payload returned to admins. It never
// contains the secret hash.
type RetailerResponse struct {
	ID   uuid.UUID         `json:"id"`
	Name string            `json:"name"`
	Type domain.TenantType `json:"type"`
}

func toCustomerResponse(c *domain.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		DateOfBirth: c.DateOfBirth,
		LoginName:   c.LoginName,
		RetailerID:  c.RetailerID,
	}
}

func toRetailerResponse(r *domain.Retailer) *RetailerResponse {
	return &RetailerResponse{
		ID:   r.ID,
		Name: r.Name,
		Type: r.TenantType,
	}
}
