package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/user/retailer-registry/internal/usecase"
)

// AdminHandler handles admin retailer management. It runs behind the
// basic-auth admin realm, never behind the tenant gate.
type AdminHandler struct {
	uc usecase.RetailerAdminUseCase
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(uc usecase.RetailerAdminUseCase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// HealthCheck is a simple health check endpoint.
func (h *AdminHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreateRetailer handles POST /api/v1/admin/retailer.
func (h *AdminHandler) CreateRetailer(w http.ResponseWriter, r *http.Request) {
	var req usecase.RetailerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	retailer, err := h.uc.Create(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, retailer)
}

// GetRetailer handles GET /api/v1/admin/retailer/{id}.
func (h *AdminHandler) GetRetailer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid retailer id")
		return
	}

	retailer, err := h.uc.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, retailer)
}

// ListRetailers handles GET /api/v1/admin/retailer.
func (h *AdminHandler) ListRetailers(w http.ResponseWriter, r *http.Request) {
	retailers, err := h.uc.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, retailers)
}

// UpdateRetailer handles PUT /api/v1/admin/retailer/{id}.
func (h *AdminHandler) UpdateRetailer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid retailer id")
		return
	}

	var req usecase.RetailerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	retailer, err := h.uc.Update(r.Context(), id, req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, retailer)
}

// DeleteRetailer handles DELETE /api/v1/admin/retailer/{id}.
func (h *AdminHandler) DeleteRetailer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid retailer id")
		return
	}

	if err := h.uc.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Retailer deleted successfully"})
}
