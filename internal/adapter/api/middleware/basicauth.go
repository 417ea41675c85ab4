package middleware

import (
	"net/http"

	"github.com/user/retailer-registry/internal/domain"
	"github.com/user/retailer-registry/internal/pkg/logger"
	"github.com/user/retailer-registry/internal/pkg/secret"
)

// AdminBasicAuth is a middleware factory for the admin realm. It is entirely
// separate from the tenant authentication gate: admin requests carry a
// username/password pair checked against stored admin identities.
func AdminBasicAuth(admins domain.AdminRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromContext(r.Context())

			userName, password, ok := r.BasicAuth()
			if !ok {
				challenge(w)
				return
			}

			admin, err := admins.FindByUserName(r.Context(), userName)
			if err != nil {
				log.Warn("admin authentication failed", "user_name", userName)
				challenge(w)
				return
			}

			if !secret.Verify(password, admin.PasswordHash) {
				log.Warn("admin password does not match", "user_name", userName)
				challenge(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func challenge(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="admin"`)
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}
