package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/user/retailer-registry/internal/domain"
)

type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository creates the PostgreSQL customer registry. The
// UNIQUE(retailer_id, login_name) constraint is the authoritative backstop
// for scoped login-name uniqueness; violations map to a ConflictError.
func NewCustomerRepository(db *sql.DB) domain.CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = "id, first_name, last_name, dob, login_name, retailer_id, created_at, updated_at"

func scanCustomer(row interface{ Scan(...any) error }) (*domain.Customer, error) {
	var c domain.Customer
	var lastName sql.NullString
	err := row.Scan(&c.ID, &c.FirstName, &lastName, &c.DateOfBirth, &c.LoginName, &c.RetailerID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.LastName = lastName.String
	return &c, nil
}

func (r *customerRepository) FindByRetailerAndID(ctx context.Context, retailerID, id uuid.UUID) (*domain.Customer, error) {
	query := `
        SELECT ` + customerColumns + `
        FROM customers
        WHERE retailer_id = $1 AND id = $2
    `

	c, err := scanCustomer(r.db.QueryRowContext(ctx, query, retailerID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find by retailer and ID: %w", err)
	}
	return c, nil
}

func (r *customerRepository) FindByRetailerAndLoginName(ctx context.Context, retailerID uuid.UUID, loginName string) (*domain.Customer, error) {
	query := `
        SELECT ` + customerColumns + `
        FROM customers
        WHERE retailer_id = $1 AND login_name = $2
    `

	c, err := scanCustomer(r.db.QueryRowContext(ctx, query, retailerID, loginName))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find by retailer and login name: %w", err)
	}
	return c, nil
}

func (r *customerRepository) FindByRetailer(ctx context.Context, retailerID uuid.UUID) ([]*domain.Customer, error) {
	query := `
        SELECT ` + customerColumns + `
        FROM customers
        WHERE retailer_id = $1
        ORDER BY created_at
    `

	rows, err := r.db.QueryContext(ctx, query, retailerID)
	if err != nil {
		return nil, fmt.Errorf("find by retailer: %w", err)
	}
	defer rows.Close()

	var out []*domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("find by retailer: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *customerRepository) ExistsForRetailer(ctx context.Context, retailerID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM customers WHERE retailer_id = $1)`
	if err := r.db.QueryRowContext(ctx, query, retailerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists for retailer: %w", err)
	}
	return exists, nil
}

func (r *customerRepository) Store(ctx context.Context, c *domain.Customer) error {
	query := `
        INSERT INTO customers (id, first_name, last_name, dob, login_name, retailer_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `

	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.FirstName,
		nullableString(c.LastName),
		c.DateOfBirth,
		c.LoginName,
		c.RetailerID,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{
				Message: fmt.Sprintf("login name '%s' is already in use", c.LoginName),
			}
		}
		return fmt.Errorf("store customer: %w", err)
	}
	return nil
}

func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	query := `
        UPDATE customers
        SET first_name = $3, last_name = $4, dob = $5, login_name = $6, updated_at = $7
        WHERE retailer_id = $1 AND id = $2
    `

	res, err := r.db.ExecContext(ctx, query,
		c.RetailerID,
		c.ID,
		c.FirstName,
		nullableString(c.LastName),
		c.DateOfBirth,
		c.LoginName,
		c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{
				Message: fmt.Sprintf("login name '%s' is already in use", c.LoginName),
			}
		}
		return fmt.Errorf("update customer: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *customerRepository) Delete(ctx context.Context, retailerID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE retailer_id = $1 AND id = $2`, retailerID, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
