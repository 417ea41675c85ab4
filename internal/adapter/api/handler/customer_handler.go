package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/user/retailer-registry/internal/adapter/api/middleware"
	"github.com/user/retailer-registry/internal/usecase"
)

// CustomerHandler handles tenant-scoped customer CRUD. It only ever runs
// behind the tenant authentication gate, which attaches the resolved
// retailer to the request context.
type CustomerHandler struct {
	uc usecase.CustomerUseCase
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(uc usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create handles POST /api/v1/customer.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	tenant, ok := middleware.RetailerFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req usecase.CustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	customer, err := h.uc.Create(r.Context(), tenant, req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, customer)
}

// Get handles GET /api/v1/customer/{id}.
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	tenant, ok := middleware.RetailerFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid customer id")
		return
	}

	customer, err := h.uc.Get(r.Context(), tenant, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

// List handles GET /api/v1/customer. It only ever returns the tenant's own
// customers.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	tenant, ok := middleware.RetailerFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	customers, err := h.uc.List(r.Context(), tenant)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, customers)
}

// Update handles PUT /api/v1/customer/{id}.
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	tenant, ok := middleware.RetailerFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid customer id")
		return
	}

	var req usecase.CustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	customer, err := h.uc.Update(r.Context(), tenant, id, req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

// Delete handles DELETE /api/v1/customer/{id}.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tenant, ok := middleware.RetailerFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid customer id")
		return
	}

	if err := h.uc.Delete(r.Context(), tenant, id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Customer deleted successfully"})
}
