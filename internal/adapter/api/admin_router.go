package api

import (
	"net/http"

	"github.com/user/retailer-registry/internal/adapter/api/handler"
	"github.com/user/retailer-registry/internal/adapter/api/middleware"
	"github.com/user/retailer-registry/internal/domain"
	"github.com/user/retailer-registry/internal/usecase"
)

// NewAdminRouter creates and configures the HTTP router for admin retailer
// management. All /api/v1/admin routes sit behind HTTP basic auth.
func NewAdminRouter(adminUC usecase.RetailerAdminUseCase, admins domain.AdminRepository) http.Handler {
	mux := http.NewServeMux()
	adminHandler := handler.NewAdminHandler(adminUC)
	basicAuth := middleware.AdminBasicAuth(admins)

	mux.HandleFunc("GET /health", adminHandler.HealthCheck)

	mux.Handle("POST /api/v1/admin/retailer", basicAuth(http.HandlerFunc(adminHandler.CreateRetailer)))
	mux.Handle("GET /api/v1/admin/retailer", basicAuth(http.HandlerFunc(adminHandler.ListRetailers)))
	mux.Handle("GET /api/v1/admin/retailer/{id}", basicAuth(http.HandlerFunc(adminHandler.GetRetailer)))
	mux.Handle("PUT /api/v1/admin/retailer/{id}", basicAuth(http.HandlerFunc(adminHandler.UpdateRetailer)))
	mux.Handle("DELETE /api/v1/admin/retailer/{id}", basicAuth(http.HandlerFunc(adminHandler.DeleteRetailer)))

	return mux
}
