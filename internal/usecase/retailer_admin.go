package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/user/retailer-registry/internal/adapter/metrics"
	"github.com/user/retailer-registry/internal/domain"
	"github.com/user/retailer-registry/internal/pkg/logger"
	"github.com/user/retailer-registry/internal/pkg/secret"
)

// RetailerAdminService implements RetailerAdminUseCase. It owns retailer
// provisioning: at most one retailer per tenant type, unique names, secrets
// stored hashed only, and deletion refused while customers still reference
// the retailer.
type RetailerAdminService struct {
	retailers domain.RetailerRepository
	customers domain.CustomerRepository
	metrics   *metrics.RegistryMetrics
}

// NewRetailerAdminService creates a new RetailerAdminService.
func NewRetailerAdminService(retailers domain.RetailerRepository, customers domain.CustomerRepository, m *metrics.RegistryMetrics) *RetailerAdminService {
	return &RetailerAdminService{retailers: retailers, customers: customers, metrics: m}
}

// Create provisions a new retailer for a tenant type.
func (s *RetailerAdminService) Create(ctx context.Context, req RetailerRequest) (*RetailerResponse, error) {
	log := logger.FromContext(ctx)

	tenantType, err := parseRetailerRequest(req, true)
	if err != nil {
		s.count("create", "invalid")
		return nil, err
	}

	if _, err := s.retailers.FindByName(ctx, req.Name); err == nil {
		s.count("create", "conflict")
		log.Warn("retailer name already in use", "name", req.Name)
		return nil, &domain.ConflictError{
			Message: fmt.Sprintf("retailer is already present, please try something else: %s", req.Name),
		}
	} else if !errors.Is(err, domain.ErrNotFound) {
		s.count("create", "error")
		return nil, fmt.Errorf("retailer name lookup: %w", err)
	}

	if _, err := s.retailers.FindByTenantType(ctx, tenantType); err == nil {
		s.count("create", "conflict")
		log.Warn("tenant type already provisioned", "tenant_type", tenantType)
		return nil, &domain.ConflictError{
			Message: fmt.Sprintf("a retailer is already provisioned for tenant type %s", tenantType),
		}
	} else if !errors.Is(err, domain.ErrNotFound) {
		s.count("create", "error")
		return nil, fmt.Errorf("tenant type lookup: %w", err)
	}

	hash, err := secret.Hash(req.APIKey)
	if err != nil {
		s.count("create", "error")
		return nil, fmt.Errorf("hash API key: %w", err)
	}

	now := time.Now().UTC()
	retailer := &domain.Retailer{
		ID:         uuid.New(),
		Name:       req.Name,
		TenantType: tenantType,
		SecretHash: hash,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.retailers.Store(ctx, retailer); err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			s.count("create", "conflict")
			return nil, err
		}
		s.count("create", "error")
		return nil, fmt.Errorf("store retailer: %w", err)
	}

	s.count("create", "ok")
	log.Info("retailer created", "retailer_id", retailer.ID, "tenant_type", retailer.TenantType)
	return toRetailerResponse(retailer), nil
}

// Get returns a retailer by id.
func (s *RetailerAdminService) Get(ctx context.Context, id uuid.UUID) (*RetailerResponse, error) {
	retailer, err := s.findByID(ctx, id)
	if err != nil {
		s.count("get", "miss")
		return nil, err
	}
	s.count("get", "ok")
	return toRetailerResponse(retailer), nil
}

// List returns all retailers.
func (s *RetailerAdminService) List(ctx context.Context) ([]*RetailerResponse, error) {
	retailers, err := s.retailers.FindAll(ctx)
	if err != nil {
		s.count("list", "error")
		return nil, fmt.Errorf("list retailers: %w", err)
	}
	out := make([]*RetailerResponse, 0, len(retailers))
	for _, r := range retailers {
		out = append(out, toRetailerResponse(r))
	}
	s.count("list", "ok")
	return out, nil
}

// Update changes a retailer's name and, when a non-blank APIKey is supplied,
// rotates its secret. The tenant type is immutable once assigned.
func (s *RetailerAdminService) Update(ctx context.Context, id uuid.UUID, req RetailerRequest) (*RetailerResponse, error) {
	log := logger.FromContext(ctx)

	if _, err := parseRetailerRequest(req, false); err != nil {
		s.count("update", "invalid")
		return nil, err
	}

	retailer, err := s.findByID(ctx, id)
	if err != nil {
		s.count("update", "miss")
		return nil, err
	}

	if other, err := s.retailers.FindByName(ctx, req.Name); err == nil && other.ID != id {
		s.count("update", "conflict")
		return nil, &domain.ConflictError{
			Message: fmt.Sprintf("retailer is already present, please try something else: %s", req.Name),
		}
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.count("update", "error")
		return nil, fmt.Errorf("retailer name lookup: %w", err)
	}

	retailer.Name = req.Name
	if strings.TrimSpace(req.APIKey) != "" {
		hash, err := secret.Hash(req.APIKey)
		if err != nil {
			s.count("update", "error")
			return nil, fmt.Errorf("hash API key: %w", err)
		}
		retailer.SecretHash = hash
	}
	retailer.UpdatedAt = time.Now().UTC()

	if err := s.retailers.Update(ctx, retailer); err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			s.count("update", "conflict")
			return nil, err
		}
		s.count("update", "error")
		return nil, fmt.Errorf("update retailer: %w", err)
	}

	s.count("update", "ok")
	log.Info("retailer updated", "retailer_id", retailer.ID)
	return toRetailerResponse(retailer), nil
}

// Delete removes a retailer. The referential guard refuses deletion while
// any customer still references the retailer; no cascade is performed.
func (s *RetailerAdminService) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContext(ctx)

	retailer, err := s.findByID(ctx, id)
	if err != nil {
		s.count("delete", "miss")
		return err
	}

	referenced, err := s.customers.ExistsForRetailer(ctx, retailer.ID)
	if err != nil {
		s.count("delete", "error")
		return fmt.Errorf("referential check: %w", err)
	}
	if referenced {
		s.count("delete", "conflict")
		log.Warn("retailer deletion blocked by customer references", "retailer_id", id)
		return &domain.ConflictError{
			Message: fmt.Sprintf("one or more customer records still reference it through the retailer_id foreign key: %s", id),
		}
	}

	if err := s.retailers.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.count("delete", "miss")
			return &domain.NotFoundError{Entity: "retailer", ID: id.String()}
		}
		s.count("delete", "error")
		return fmt.Errorf("delete retailer: %w", err)
	}

	s.count("delete", "ok")
	log.Info("retailer deleted", "retailer_id", id)
	return nil
}

func (s *RetailerAdminService) findByID(ctx context.Context, id uuid.UUID) (*domain.Retailer, error) {
	retailer, err := s.retailers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{Entity: "retailer", ID: id.String()}
		}
		return nil, fmt.Errorf("find retailer: %w", err)
	}
	return retailer, nil
}

// parseRetailerRequest validates the request shape and resolves the tenant
// type. The type and API key are only required on create; update keeps the
// existing values when they are absent.
func parseRetailerRequest(req RetailerRequest, create bool) (domain.TenantType, error) {
	fields := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "retailer name must not be blank"
	}
	if create && strings.TrimSpace(req.APIKey) == "" {
		fields["api_key"] = "api key must not be blank"
	}

	var tenantType domain.TenantType
	if create {
		tenantType = domain.TenantType(strings.ToUpper(req.Type))
		if !tenantType.Valid() {
			t, err := domain.TenantTypeFromName(req.Type)
			if err != nil {
				fields["type"] = fmt.Sprintf("unknown tenant type: %s", req.Type)
			} else {
				tenantType = t
			}
		}
	}

	if len(fields) > 0 {
		return "", &domain.ValidationError{Fields: fields}
	}
	return tenantType, nil
}

func (s *RetailerAdminService) count(op, status string) {
	if s.metrics != nil {
		s.metrics.RetailerOps.WithLabelValues(op, status).Inc()
	}
}
