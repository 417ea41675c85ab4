package domain

import (
	"context"
	"time"
)

// AdminIdentity is an operator account for the basic-auth admin realm. It is
// separate from the tenant authentication gate.
type AdminIdentity struct {
	UserName     string    `json:"user_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// AdminRepository defines the interface for admin identity persistence.
type AdminRepository interface {
	FindByUserName(ctx context.Context, userName string) (*AdminIdentity, error)
	Store(ctx context.Context, a *AdminIdentity) error
}
