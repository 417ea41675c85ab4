package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/user/retailer-registry/internal/domain"
	"github.com/user/retailer-registry/internal/domain/mocks"
	"github.com/user/retailer-registry/internal/pkg/secret"
)

func provisionedDirectory(t *testing.T, tenantType domain.TenantType, apiKey string) (*mocks.MockRetailerRepository, *domain.Retailer) {
	t.Helper()
	hash, err := secret.Hash(apiKey)
	if err != nil {
		t.Fatalf("failed to hash test key: %v", err)
	}
	retailer := &domain.Retailer{
		ID:         uuid.New(),
		Name:       tenantType.DisplayName(),
		TenantType: tenantType,
		SecretHash: hash,
	}
	return &mocks.MockRetailerRepository{Retailers: []*domain.Retailer{retailer}}, retailer
}

func gateChain(directory domain.RetailerRepository, next http.Handler) http.Handler {
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	return Logging(discard)(TenantAuth(directory, nil)(next))
}

func TestTenantAuth(t *testing.T) {
	directory, retailer := provisionedDirectory(t, domain.TenantAmazon, "supersecretkey")

	tests := []struct {
		name           string
		apiKey         string
		tenantTag      string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Valid Credentials",
			apiKey:         "supersecretkey",
			tenantTag:      "Amazon",
			expectedStatus: http.StatusOK,
			expectedBody:   "passed",
		},
		{
			name:           "Case Insensitive Tenant Tag",
			apiKey:         "supersecretkey",
			tenantTag:      "AMAZON",
			expectedStatus: http.StatusOK,
			expectedBody:   "passed",
		},
		{
			name:           "Missing API Key",
			apiKey:         "",
			tenantTag:      "Amazon",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Missing API Key",
		},
		{
			name:           "Blank API Key",
			apiKey:         "   ",
			tenantTag:      "Amazon",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Missing API Key",
		},
		{
			name:           "Missing Key Wins Over Unknown Tag",
			apiKey:         "",
			tenantTag:      "no_such_tag",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Missing API Key",
		},
		{
			name:           "Unknown Tenant Tag",
			apiKey:         "supersecretkey",
			tenantTag:      "no_such_tag",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid Retailer name or Reatiler data not present",
		},
		{
			name:           "Known Tag But Not Provisioned",
			apiKey:         "supersecretkey",
			tenantTag:      "Walmart",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid Retailer name or Reatiler data not present",
		},
		{
			name:           "Wrong API Key",
			apiKey:         "wrong",
			tenantTag:      "Amazon",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid API Key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotRetailer *domain.Retailer
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotRetailer, _ = RetailerFromContext(r.Context())
				w.Write([]byte("passed"))
			})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/customer", nil)
			if tt.apiKey != "" {
				req.Header.Set(APIKeyHeader, tt.apiKey)
			}
			if tt.tenantTag != "" {
				req.Header.Set(RetailerHeader, tt.tenantTag)
			}
			rec := httptest.NewRecorder()

			gateChain(directory, next).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if rec.Body.String() != tt.expectedBody {
				t.Errorf("expected body %q, got %q", tt.expectedBody, rec.Body.String())
			}
			if tt.expectedStatus == http.StatusOK {
				if gotRetailer == nil || gotRetailer.ID != retailer.ID {
					t.Error("expected the resolved retailer in the request context")
				}
			} else if gotRetailer != nil {
				t.Error("handler must not run on rejection")
			}
		})
	}
}

func TestTenantAuthFailsClosed(t *testing.T) {
	t.Run("Directory Error", func(t *testing.T) {
		directory := &mocks.MockRetailerRepository{FindErr: errors.New("connection refused")}
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler must not run when the directory fails")
		})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/customer", nil)
		req.Header.Set(APIKeyHeader, "supersecretkey")
		req.Header.Set(RetailerHeader, "Amazon")
		rec := httptest.NewRecorder()

		gateChain(directory, next).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", rec.Code)
		}
		if rec.Body.String() != "Invalid Retailer name or API Key" {
			t.Errorf("unexpected body: %q", rec.Body.String())
		}
	})

	t.Run("Panic In Lookup", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler must not run when authentication panics")
		})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/customer", nil)
		req.Header.Set(APIKeyHeader, "supersecretkey")
		req.Header.Set(RetailerHeader, "Amazon")
		rec := httptest.NewRecorder()

		gateChain(panickyDirectory{}, next).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", rec.Code)
		}
		if rec.Body.String() != "Invalid Retailer name or API Key" {
			t.Errorf("unexpected body: %q", rec.Body.String())
		}
	})

	t.Run("Integrity Fault", func(t *testing.T) {
		// Two retailers with the same tenant type should be impossible;
		// the gate must reject, not pass through.
		directory := &mocks.MockRetailerRepository{Retailers: []*domain.Retailer{
			{ID: uuid.New(), TenantType: domain.TenantAmazon},
			{ID: uuid.New(), TenantType: domain.TenantAmazon},
		}}
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler must not run on an integrity fault")
		})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/customer", nil)
		req.Header.Set(APIKeyHeader, "supersecretkey")
		req.Header.Set(RetailerHeader, "Amazon")
		rec := httptest.NewRecorder()

		gateChain(directory, next).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", rec.Code)
		}
	})
}

// panickyDirectory blows up on the lookup the gate performs. The embedded
// interface panics on anything else.
type panickyDirectory struct {
	domain.RetailerRepository
}

func (panickyDirectory) FindByTenantType(ctx context.Context, t domain.TenantType) (*domain.Retailer, error) {
	panic("lookup exploded")
}

func TestTenantAuthHandlerPanicPropagates(t *testing.T) {
	directory, _ := provisionedDirectory(t, domain.TenantAmazon, "supersecretkey")
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("handler exploded")
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/customer", nil)
	req.Header.Set(APIKeyHeader, "supersecretkey")
	req.Header.Set(RetailerHeader, "Amazon")
	rec := httptest.NewRecorder()

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		gateChain(directory, next).ServeHTTP(rec, req)
	}()

	if recovered == nil {
		t.Fatal("expected the handler panic to propagate past the gate")
	}
	if rec.Code == http.StatusUnauthorized {
		t.Error("a handler panic must not be reported as an authentication rejection")
	}
	if rec.Body.String() == "Invalid Retailer name or API Key" {
		t.Error("a handler panic must not produce the gate's rejection body")
	}
}

func TestLoggingTraceID(t *testing.T) {
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	handler := Logging(discard)(next)

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/health", nil))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/health", nil))

	a := first.Header().Get("X-Trace-Id")
	b := second.Header().Get("X-Trace-Id")
	if a == "" || b == "" {
		t.Fatal("expected a trace id on every response")
	}
	if a == b {
		t.Error("trace ids must not leak across requests")
	}
}
