package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/user/retailer-registry/internal/adapter/metrics"
	"github.com/user/retailer-registry/internal/domain"
	"github.com/user/retailer-registry/internal/pkg/logger"
)

var dobPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// CustomerService implements CustomerUseCase. All operations are scoped to
// the tenant passed in; a customer belonging to another retailer is
// indistinguishable from one that does not exist.
type CustomerService struct {
	customers domain.CustomerRepository
	metrics   *metrics.RegistryMetrics
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customers domain.CustomerRepository, m *metrics.RegistryMetrics) *CustomerService {
	return &CustomerService{customers: customers, metrics: m}
}

// Create validates the request, runs the scoped login-name uniqueness check,
// and persists a customer owned by the tenant. The retailer reference is
// taken from the resolved tenant only.
func (s *CustomerService) Create(ctx context.Context, tenant *domain.Retailer, req CustomerRequest) (*CustomerResponse, error) {
	log := logger.FromContext(ctx)

	if err := validateCustomerRequest(req); err != nil {
		s.count("create", "invalid")
		return nil, err
	}
	if err := s.ensureLoginNameAvailable(ctx, tenant.ID, req.LoginName, uuid.Nil); err != nil {
		s.count("create", "conflict")
		return nil, err
	}

	now := time.Now().UTC()
	customer := &domain.Customer{
		ID:          uuid.New(),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		LoginName:   req.LoginName,
		RetailerID:  tenant.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.customers.Store(ctx, customer); err != nil {
		// The storage-level unique constraint is the backstop for the
		// check above under concurrent creates.
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			s.count("create", "conflict")
			return nil, err
		}
		s.count("create", "error")
		return nil, fmt.Errorf("create customer: %w", err)
	}

	s.count("create", "ok")
	log.Info("customer created", "customer_id", customer.ID, "retailer_id", tenant.ID)
	return toCustomerResponse(customer), nil
}

// Get returns the customer with the given id under the tenant's scope.
func (s *CustomerService) Get(ctx context.Context, tenant *domain.Retailer, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.findScoped(ctx, tenant, id)
	if err != nil {
		s.count("get", "miss")
		return nil, err
	}
	s.count("get", "ok")
	return toCustomerResponse(customer), nil
}

// List returns all customers owned by the tenant.
func (s *CustomerService) List(ctx context.Context, tenant *domain.Retailer) ([]*CustomerResponse, error) {
	customers, err := s.customers.FindByRetailer(ctx, tenant.ID)
	if err != nil {
		s.count("list", "error")
		return nil, fmt.Errorf("list customers: %w", err)
	}
	out := make([]*CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toCustomerResponse(c))
	}
	s.count("list", "ok")
	return out, nil
}

// Update modifies a customer under the tenant's scope. The scoped
// uniqueness check excludes the customer's own record, so an unchanged
// login name passes. The owning retailer never changes.
func (s *CustomerService) Update(ctx context.Context, tenant *domain.Retailer, id uuid.UUID, req CustomerRequest) (*CustomerResponse, error) {
	log := logger.FromContext(ctx)

	customer, err := s.findScoped(ctx, tenant, id)
	if err != nil {
		s.count("update", "miss")
		return nil, err
	}
	if err := validateCustomerRequest(req); err != nil {
		s.count("update", "invalid")
		return nil, err
	}
	if err := s.ensureLoginNameAvailable(ctx, tenant.ID, req.LoginName, customer.ID); err != nil {
		s.count("update", "conflict")
		return nil, err
	}

	customer.FirstName = req.FirstName
	customer.LastName = req.LastName
	customer.DateOfBirth = req.DateOfBirth
	customer.LoginName = req.LoginName
	customer.UpdatedAt = time.Now().UTC()

	if err := s.customers.Update(ctx, customer); err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			s.count("update", "conflict")
			return nil, err
		}
		s.count("update", "error")
		return nil, fmt.Errorf("update customer: %w", err)
	}

	s.count("update", "ok")
	log.Info("customer updated", "customer_id", customer.ID, "retailer_id", tenant.ID)
	return toCustomerResponse(customer), nil
}

// Delete removes a customer under the tenant's scope.
func (s *CustomerService) Delete(ctx context.Context, tenant *domain.Retailer, id uuid.UUID) error {
	log := logger.FromContext(ctx)

	if err := s.customers.Delete(ctx, tenant.ID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.count("delete", "miss")
			return &domain.NotFoundError{Entity: "customer", ID: id.String()}
		}
		s.count("delete", "error")
		return fmt.Errorf("delete customer: %w", err)
	}

	s.count("delete", "ok")
	log.Info("customer deleted", "customer_id", id, "retailer_id", tenant.ID)
	return nil
}

// ensureLoginNameAvailable is the scoped uniqueness check: it fails if any
// customer other than excludeID already uses loginName under the retailer.
// Customers under different retailers may share a login name.
func (s *CustomerService) ensureLoginNameAvailable(ctx context.Context, retailerID uuid.UUID, loginName string, excludeID uuid.UUID) error {
	existing, err := s.customers.FindByRetailerAndLoginName(ctx, retailerID, loginName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("login name lookup: %w", err)
	}
	if existing.ID == excludeID {
		return nil
	}
	logger.FromContext(ctx).Warn("login name already in use", "login_name", loginName, "retailer_id", retailerID)
	return &domain.ConflictError{
		Message: fmt.Sprintf("login name '%s' is already in use", loginName),
	}
}

func (s *CustomerService) findScoped(ctx context.Context, tenant *domain.Retailer, id uuid.UUID) (*domain.Customer, error) {
	customer, err := s.customers.FindByRetailerAndID(ctx, tenant.ID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{Entity: "customer", ID: id.String()}
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	return customer, nil
}

func validateCustomerRequest(req CustomerRequest) error {
	fields := map[string]string{}
	if strings.TrimSpace(req.FirstName) == "" {
		fields["first_name"] = "first name must not be blank"
	}
	if strings.TrimSpace(req.LoginName) == "" {
		fields["login_name"] = "login name must not be blank"
	}
	if strings.TrimSpace(req.DateOfBirth) == "" {
		fields["dob"] = "date of birth must not be blank"
	} else if !dobPattern.MatchString(req.DateOfBirth) {
		fields["dob"] = "date of birth must match YYYY-MM-DD"
	} else if _, err := time.Parse("2006-01-02", req.DateOfBirth); err != nil {
		fields["dob"] = "date of birth must be a valid calendar date"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

func (s *CustomerService) count(op, status string) {
	if s.metrics != nil {
		s.metrics.CustomerOps.WithLabelValues(op, status).Inc()
	}
}
