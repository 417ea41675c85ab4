package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/user/retailer-registry/internal/adapter/metrics"
	"github.com/user/retailer-registry/internal/domain"
	"github.com/user/retailer-registry/internal/pkg/logger"
	"github.com/user/retailer-registry/internal/pkg/secret"
)

// Header names are fixed strings and part of the wire contract.
const (
	APIKeyHeader   = "X-API-KEY"
	RetailerHeader = "X-RETAILER"
)

// Rejection bodies are part of the wire contract and must not change,
// misspelling included.
const (
	msgMissingKey      = "Missing API Key"
	msgInvalidKey      = "Invalid API Key"
	msgUnknownRetailer = "Invalid Retailer name or Reatiler data not present"
	msgGenericReject   = "Invalid Retailer name or API Key"
)

// TenantAuth is a middleware factory that returns the tenant authentication
// gate. For every wrapped request it extracts the tenant tag and API key
// headers, resolves the retailer through the directory, verifies the key
// against the stored hash, and attaches the resolved retailer to the request
// context. Any rejection is a 401 with a fixed plain-text body; any
// unexpected fault maps to a generic 401 rather than leaking internals.
// Rejections are logged with the request's trace id and the attempted tenant
// tag, never the supplied secret.
func TenantAuth(directory domain.RetailerRepository, m *metrics.RegistryMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			retailer, ok := authenticate(w, r, directory, m)
			if !ok {
				return
			}
			next.ServeHTTP(w, r.WithContext(WithRetailer(r.Context(), retailer)))
		})
	}
}

// authenticate runs the gate steps and writes the rejection itself when the
// request does not pass. The recover covers only these steps: a panic here
// must fail closed, while a panic in a downstream handler is not an
// authentication outcome and propagates untouched.
func authenticate(w http.ResponseWriter, r *http.Request, directory domain.RetailerRepository, m *metrics.RegistryMetrics) (retailer *domain.Retailer, ok bool) {
	log := logger.FromContext(r.Context())

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("panic during tenant authentication", "panic", rec)
			reject(w, m, "internal", msgGenericReject)
			retailer, ok = nil, false
		}
	}()

	apiKey := r.Header.Get(APIKeyHeader)
	tenantTag := r.Header.Get(RetailerHeader)

	if strings.TrimSpace(apiKey) == "" {
		log.Warn("missing API key header", "tenant_tag", tenantTag)
		reject(w, m, "missing_key", msgMissingKey)
		return nil, false
	}

	tenantType, err := domain.TenantTypeFromName(tenantTag)
	if err != nil {
		log.Warn("unknown tenant tag", "tenant_tag", tenantTag)
		reject(w, m, "unknown_tenant", msgUnknownRetailer)
		return nil, false
	}

	retailer, err = directory.FindByTenantType(r.Context(), tenantType)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Warn("no retailer provisioned for tenant tag", "tenant_tag", tenantTag)
			reject(w, m, "unknown_tenant", msgUnknownRetailer)
			return nil, false
		}
		log.Error("retailer lookup failed", "error", err, "tenant_tag", tenantTag)
		reject(w, m, "internal", msgGenericReject)
		return nil, false
	}

	if !secret.Verify(apiKey, retailer.SecretHash) {
		log.Warn("API key does not match", "tenant_tag", tenantTag)
		reject(w, m, "invalid_key", msgInvalidKey)
		return nil, false
	}

	if m != nil {
		m.AuthAccepted.Inc()
	}
	return retailer, true
}

func reject(w http.ResponseWriter, m *metrics.RegistryMetrics, reason, body string) {
	if m != nil {
		m.AuthRejections.WithLabelValues(reason).Inc()
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(body))
}
