package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/user/retailer-registry/internal/adapter/api/middleware"
	"github.com/user/retailer-registry/internal/domain"
	"github.com/user/retailer-registry/internal/usecase"
)

// MockCustomerUseCase is a mock implementation of usecase.CustomerUseCase.
type MockCustomerUseCase struct {
	CreateFunc func(ctx context.Context, tenant *domain.Retailer, req usecase.CustomerRequest) (*usecase.CustomerResponse, error)
	GetFunc    func(ctx context.Context, tenant *domain.Retailer, id uuid.UUID) (*usecase.CustomerResponse, error)
	ListFunc   func(ctx context.Context, tenant *domain.Retailer) ([]*usecase.CustomerResponse, error)
	UpdateFunc func(ctx context.Context, tenant *domain.Retailer, id uuid.UUID, req usecase.CustomerRequest) (*usecase.CustomerResponse, error)
	DeleteFunc func(ctx context.Context, tenant *domain.Retailer, id uuid.UUID) error
}

func (m *MockCustomerUseCase) Create(ctx context.Context, tenant *domain.Retailer, req usecase.CustomerRequest) (*usecase.CustomerResponse, error) {
	return m.CreateFunc(ctx, tenant, req)
}

func (m *MockCustomerUseCase) Get(ctx context.Context, tenant *domain.Retailer, id uuid.UUID) (*usecase.CustomerResponse, error) {
	return m.GetFunc(ctx, tenant, id)
}

func (m *MockCustomerUseCase) List(ctx context.Context, tenant *domain.Retailer) ([]*usecase.CustomerResponse, error) {
	return m.ListFunc(ctx, tenant)
}

func (m *MockCustomerUseCase) Update(ctx context.Context, tenant *domain.Retailer, id uuid.UUID, req usecase.CustomerRequest) (*usecase.CustomerResponse, error) {
	return m.UpdateFunc(ctx, tenant, id, req)
}

func (m *MockCustomerUseCase) Delete(ctx context.Context, tenant *domain.Retailer, id uuid.UUID) error {
	return m.DeleteFunc(ctx, tenant, id)
}

// newCustomerMux routes like the public router but injects a pre-resolved
// tenant instead of running the authentication gate.
func newCustomerMux(uc usecase.CustomerUseCase, tenant *domain.Retailer) http.Handler {
	h := NewCustomerHandler(uc)
	withTenant := func(next http.HandlerFunc) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithRetailer(r.Context(), tenant)))
		})
	}

	mux := http.NewServeMux()
	mux.Handle("POST /api/v1/customer", withTenant(h.Create))
	mux.Handle("GET /api/v1/customer", withTenant(h.List))
	mux.Handle("GET /api/v1/customer/{id}", withTenant(h.Get))
	mux.Handle("PUT /api/v1/customer/{id}", withTenant(h.Update))
	mux.Handle("DELETE /api/v1/customer/{id}", withTenant(h.Delete))
	return mux
}

func TestCustomerHandler_ErrorMapping(t *testing.T) {
	tenant := &domain.Retailer{ID: uuid.New(), TenantType: domain.TenantAmazon}
	customerID := uuid.New()

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		ucErr          error
		expectedStatus int
	}{
		{
			name:           "Conflict",
			method:         http.MethodPost,
			path:           "/api/v1/customer",
			body:           `{"first_name":"Alice","dob":"1990-01-01","login_name":"alice.smith"}`,
			ucErr:          &domain.ConflictError{Message: "login name 'alice.smith' is already in use"},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "Validation Failure",
			method:         http.MethodPost,
			path:           "/api/v1/customer",
			body:           `{"dob":"1990-01-01"}`,
			ucErr:          &domain.ValidationError{Fields: map[string]string{"first_name": "first name must not be blank"}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Not Found",
			method:         http.MethodGet,
			path:           "/api/v1/customer/" + customerID.String(),
			ucErr:          &domain.NotFoundError{Entity: "customer", ID: customerID.String()},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &MockCustomerUseCase{
				CreateFunc: func(ctx context.Context, tenant *domain.Retailer, req usecase.CustomerRequest) (*usecase.CustomerResponse, error) {
					return nil, tt.ucErr
				},
				GetFunc: func(ctx context.Context, tenant *domain.Retailer, id uuid.UUID) (*usecase.CustomerResponse, error) {
					return nil, tt.ucErr
				},
			}

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			newCustomerMux(uc, tenant).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, rec.Code, rec.Body.String())
			}

			var body struct {
				Status int `json:"status"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("expected a JSON error body: %v", err)
			}
			if body.Status != tt.expectedStatus {
				t.Errorf("expected body status %d, got %d", tt.expectedStatus, body.Status)
			}
		})
	}
}

func TestCustomerHandler_Create(t *testing.T) {
	tenant := &domain.Retailer{ID: uuid.New(), TenantType: domain.TenantAmazon}

	t.Run("Created", func(t *testing.T) {
		uc := &MockCustomerUseCase{
			CreateFunc: func(ctx context.Context, tenant *domain.Retailer, req usecase.CustomerRequest) (*usecase.CustomerResponse, error) {
				return &usecase.CustomerResponse{
					ID:          uuid.New(),
					FirstName:   req.FirstName,
					DateOfBirth: req.DateOfBirth,
					LoginName:   req.LoginName,
					RetailerID:  tenant.ID,
				}, nil
			},
		}

		body := `{"first_name":"Alice","dob":"1990-01-01","login_name":"alice.smith"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/customer", strings.NewReader(body))
		rec := httptest.NewRecorder()
		newCustomerMux(uc, tenant).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp usecase.CustomerResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.RetailerID != tenant.ID {
			t.Error("expected the tenant's retailer id in the response")
		}
	})

	t.Run("Malformed Body", func(t *testing.T) {
		uc := &MockCustomerUseCase{
			CreateFunc: func(ctx context.Context, tenant *domain.Retailer, req usecase.CustomerRequest) (*usecase.CustomerResponse, error) {
				t.Error("use case must not be called for a malformed body")
				return nil, nil
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/api/v1/customer", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		newCustomerMux(uc, tenant).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("Invalid ID", func(t *testing.T) {
		uc := &MockCustomerUseCase{
			GetFunc: func(ctx context.Context, tenant *domain.Retailer, id uuid.UUID) (*usecase.CustomerResponse, error) {
				t.Error("use case must not be called for an invalid id")
				return nil, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/api/v1/customer/not-a-uuid", nil)
		rec := httptest.NewRecorder()
		newCustomerMux(uc, tenant).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
	})
}
