package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/user/retailer-registry/internal/domain"
)

// MockRetailerRepository is an in-memory implementation of
// domain.RetailerRepository for testing.
type MockRetailerRepository struct {
	mu        sync.Mutex
	Retailers []*domain.Retailer
	FindErr   error
	StoreErr  error
	UpdateErr error
	DeleteErr error
}

func (m *MockRetailerRepository) FindByTenantType(ctx context.Context, t domain.TenantType) (*domain.Retailer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	var found *domain.Retailer
	for _, r := range m.Retailers {
		if r.TenantType == t {
			if found != nil {
				return nil, domain.ErrIntegrity
			}
			found = r
		}
	}
	if found == nil {
		return nil, domain.ErrNotFound
	}
	return found, nil
}

func (m *MockRetailerRepository) FindByName(ctx context.Context, name string) (*domain.Retailer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	for _, r := range m.Retailers {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockRetailerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Retailer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	for _, r := range m.Retailers {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockRetailerRepository) FindAll(ctx context.Context) ([]*domain.Retailer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	out := make([]*domain.Retailer, len(m.Retailers))
	copy(out, m.Retailers)
	return out, nil
}

func (m *MockRetailerRepository) Store(ctx context.Context, r *domain.Retailer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StoreErr != nil {
		return m.StoreErr
	}
	m.Retailers = append(m.Retailers, r)
	return nil
}

func (m *MockRetailerRepository) Update(ctx context.Context, r *domain.Retailer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	for i, existing := range m.Retailers {
		if existing.ID == r.ID {
			m.Retailers[i] = r
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *MockRetailerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	for i, r := range m.Retailers {
		if r.ID == id {
			m.Retailers = append(m.Retailers[:i], m.Retailers[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// MockCustomerRepository is an in-memory implementation of
// domain.CustomerRepository for testing.
type MockCustomerRepository struct {
	mu        sync.Mutex
	Customers []*domain.Customer
	FindErr   error
	StoreErr  error
	UpdateErr error
	DeleteErr error
}

func (m *MockCustomerRepository) FindByRetailerAndID(ctx context.Context, retailerID, id uuid.UUID) (*domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	for _, c := range m.Customers {
		if c.RetailerID == retailerID && c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockCustomerRepository) FindByRetailerAndLoginName(ctx context.Context, retailerID uuid.UUID, loginName string) (*domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	for _, c := range m.Customers {
		if c.RetailerID == retailerID && c.LoginName == loginName {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockCustomerRepository) FindByRetailer(ctx context.Context, retailerID uuid.UUID) ([]*domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	var out []*domain.Customer
	for _, c := range m.Customers {
		if c.RetailerID == retailerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MockCustomerRepository) ExistsForRetailer(ctx context.Context, retailerID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return false, m.FindErr
	}
	for _, c := range m.Customers {
		if c.RetailerID == retailerID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockCustomerRepository) Store(ctx context.Context, c *domain.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StoreErr != nil {
		return m.StoreErr
	}
	m.Customers = append(m.Customers, c)
	return nil
}

func (m *MockCustomerRepository) Update(ctx context.Context, c *domain.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	for i, existing := range m.Customers {
		if existing.RetailerID == c.RetailerID && existing.ID == c.ID {
			m.Customers[i] = c
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *MockCustomerRepository) Delete(ctx context.Context, retailerID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	for i, c := range m.Customers {
		if c.RetailerID == retailerID && c.ID == id {
			m.Customers = append(m.Customers[:i], m.Customers[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// MockAdminRepository is an in-memory implementation of
// domain.AdminRepository for testing.
type MockAdminRepository struct {
	mu      sync.Mutex
	Admins  []*domain.AdminIdentity
	FindErr error
}

func (m *MockAdminRepository) FindByUserName(ctx context.Context, userName string) (*domain.AdminIdentity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	for _, a := range m.Admins {
		if a.UserName == userName {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockAdminRepository) Store(ctx context.Context, a *domain.AdminIdentity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Admins = append(m.Admins, a)
	return nil
}
