package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/user/retailer-registry/internal/domain"
	"github.com/user/retailer-registry/internal/pkg/logger"
)

// errorBody is the JSON error envelope for non-auth failures. Gate
// rejections use fixed plain-text bodies instead and never reach this path.
type errorBody struct {
	Status   int               `json:"status"`
	Error    string            `json:"error"`
	Message  string            `json:"message,omitempty"`
	Messages map[string]string `json:"messages,omitempty"`
	TraceID  string            `json:"trace_id,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps domain errors to HTTP statuses. Unknown ids within the
// caller's scope are a 404, conflicts a 409, shape failures a 400 with a
// field map; everything else is a 500 with no internal detail leaked.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	traceID := w.Header().Get("X-Trace-Id")

	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		respondJSON(w, http.StatusBadRequest, errorBody{
			Status:   http.StatusBadRequest,
			Error:    "Validation Failed",
			Messages: validation.Fields,
			TraceID:  traceID,
		})
		return
	}

	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		respondJSON(w, http.StatusConflict, errorBody{
			Status:  http.StatusConflict,
			Error:   "Conflict",
			Message: conflict.Message,
			TraceID: traceID,
		})
		return
	}

	if errors.Is(err, domain.ErrNotFound) {
		respondJSON(w, http.StatusNotFound, errorBody{
			Status:  http.StatusNotFound,
			Error:   "Not Found",
			Message: err.Error(),
			TraceID: traceID,
		})
		return
	}

	logger.FromContext(r.Context()).Error("request failed", "error", err, "path", r.URL.Path)
	respondJSON(w, http.StatusInternalServerError, errorBody{
		Status:  http.StatusInternalServerError,
		Error:   "Internal Server Error",
		TraceID: traceID,
	})
}

func badRequest(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, errorBody{
		Status:  http.StatusBadRequest,
		Error:   "Bad Request",
		Message: message,
	})
}
