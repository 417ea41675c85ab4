package api

import (
	"net/http"

	"github.com/user/retailer-registry/internal/adapter/api/handler"
	"github.com/user/retailer-registry/internal/adapter/api/middleware"
	"github.com/user/retailer-registry/internal/adapter/metrics"
	"github.com/user/retailer-registry/internal/domain"
	"github.com/user/retailer-registry/internal/usecase"
)

// NewRouter creates and configures the public HTTP router. Only the
// customer routes pass through the tenant authentication gate; everything
// else is untouched by it.
func NewRouter(
	directory domain.RetailerRepository,
	customerUC usecase.CustomerUseCase,
	m *metrics.RegistryMetrics,
) http.Handler {
	mux := http.NewServeMux()

	customerHandler := handler.NewCustomerHandler(customerUC)
	gate := middleware.TenantAuth(directory, m)

	mux.Handle("POST /api/v1/customer", gate(http.HandlerFunc(customerHandler.Create)))
	mux.Handle("GET /api/v1/customer", gate(http.HandlerFunc(customerHandler.List)))
	mux.Handle("GET /api/v1/customer/{id}", gate(http.HandlerFunc(customerHandler.Get)))
	mux.Handle("PUT /api/v1/customer/{id}", gate(http.HandlerFunc(customerHandler.Update)))
	mux.Handle("DELETE /api/v1/customer/{id}", gate(http.HandlerFunc(customerHandler.Delete)))

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return mux
}
