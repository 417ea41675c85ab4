package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/user/retailer-registry/internal/domain"
)

type retailerRepository struct {
	db *sql.DB
}

// NewRetailerRepository creates the PostgreSQL retailer directory.
func NewRetailerRepository(db *sql.DB) domain.RetailerRepository {
	return &retailerRepository{db: db}
}

const retailerColumns = "id, name, tenant_type, secret_hash, created_at, updated_at"

func scanRetailer(row interface{ Scan(...any) error }) (*domain.Retailer, error) {
	var r domain.Retailer
	err := row.Scan(&r.ID, &r.Name, &r.TenantType, &r.SecretHash, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// FindByTenantType returns the single retailer provisioned for the type.
// The UNIQUE(tenant_type) constraint guarantees at most one row; a second
// row means the constraint was bypassed and is surfaced as ErrIntegrity.
func (r *retailerRepository) FindByTenantType(ctx context.Context, t domain.TenantType) (*domain.Retailer, error) {
	query := `
        SELECT ` + retailerColumns + `
        FROM retailers
        WHERE tenant_type = $1
    `

	rows, err := r.db.QueryContext(ctx, query, string(t))
	if err != nil {
		return nil, fmt.Errorf("find by tenant type: %w", err)
	}
	defer rows.Close()

	var found *domain.Retailer
	for rows.Next() {
		if found != nil {
			return nil, fmt.Errorf("%w: multiple retailers for tenant type %s", domain.ErrIntegrity, t)
		}
		found, err = scanRetailer(rows)
		if err != nil {
			return nil, fmt.Errorf("find by tenant type: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find by tenant type: %w", err)
	}
	if found == nil {
		return nil, domain.ErrNotFound
	}
	return found, nil
}

func (r *retailerRepository) FindByName(ctx context.Context, name string) (*domain.Retailer, error) {
	query := `
        SELECT ` + retailerColumns + `
        FROM retailers
        WHERE name = $1
    `

	ret, err := scanRetailer(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find by name: %w", err)
	}
	return ret, nil
}

func (r *retailerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Retailer, error) {
	query := `
        SELECT ` + retailerColumns + `
        FROM retailers
        WHERE id = $1
    `

	ret, err := scanRetailer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find by ID: %w", err)
	}
	return ret, nil
}

func (r *retailerRepository) FindAll(ctx context.Context) ([]*domain.Retailer, error) {
	query := `
        SELECT ` + retailerColumns + `
        FROM retailers
        ORDER BY created_at
    `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("find all: %w", err)
	}
	defer rows.Close()

	var out []*domain.Retailer
	for rows.Next() {
		ret, err := scanRetailer(rows)
		if err != nil {
			return nil, fmt.Errorf("find all: %w", err)
		}
		out = append(out, ret)
	}
	return out, rows.Err()
}

func (r *retailerRepository) Store(ctx context.Context, ret *domain.Retailer) error {
	query := `
        INSERT INTO retailers (id, name, tenant_type, secret_hash, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `

	_, err := r.db.ExecContext(ctx, query,
		ret.ID,
		ret.Name,
		string(ret.TenantType),
		ret.SecretHash,
		ret.CreatedAt,
		ret.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{
				Message: fmt.Sprintf("retailer name or tenant type already in use: %s", ret.Name),
			}
		}
		return fmt.Errorf("store retailer: %w", err)
	}
	return nil
}

func (r *retailerRepository) Update(ctx context.Context, ret *domain.Retailer) error {
	query := `
        UPDATE retailers
        SET name = $2, secret_hash = $3, updated_at = $4
        WHERE id = $1
    `

	res, err := r.db.ExecContext(ctx, query, ret.ID, ret.Name, ret.SecretHash, ret.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{
				Message: fmt.Sprintf("retailer name already in use: %s", ret.Name),
			}
		}
		return fmt.Errorf("update retailer: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update retailer: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *retailerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM retailers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete retailer: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete retailer: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is a postgres unique_violation
// (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
