package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/user/retailer-registry/internal/domain"
)

type adminRepository struct {
	db *sql.DB
}

// NewAdminRepository creates the PostgreSQL admin identity store backing the
// basic-auth admin realm.
func NewAdminRepository(db *sql.DB) domain.AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) FindByUserName(ctx context.Context, userName string) (*domain.AdminIdentity, error) {
	query := `
        SELECT user_name, password_hash, created_at
        FROM admin_identities
        WHERE user_name = $1
    `

	var a domain.AdminIdentity
	err := r.db.QueryRowContext(ctx, query, userName).Scan(&a.UserName, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find by user name: %w", err)
	}
	return &a, nil
}

func (r *adminRepository) Store(ctx context.Context, a *domain.AdminIdentity) error {
	query := `
        INSERT INTO admin_identities (user_name, password_hash, created_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_name) DO UPDATE SET password_hash = EXCLUDED.password_hash
    `

	if _, err := r.db.ExecContext(ctx, query, a.UserName, a.PasswordHash, a.CreatedAt); err != nil {
		return fmt.Errorf("store admin identity: %w", err)
	}
	return nil
}
