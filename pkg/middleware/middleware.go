package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/mlongerich/DonationTracker-sub002/pkg/composables"
	"github.com/mlongerich/DonationTracker-sub002/pkg/httpapi"
)

// ProvidePool attaches the connection pool to every request context.
func ProvidePool(pool *pgxpool.Pool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(composables.WithPool(r.Context(), pool)))
		})
	}
}

// RequireTenant resolves the tenant from the configured header and
// rejects requests without one.
func RequireTenant(header string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(header)
			if raw == "" {
				_ = httpapi.WriteError(w, http.StatusBadRequest, "TENANT_REQUIRED", header+" header is required", nil)
				return
			}
			tenantID, err := uuid.Parse(raw)
			if err != nil {
				_ = httpapi.WriteError(w, http.StatusBadRequest, "TENANT_INVALID", header+" must be a UUID", nil)
				return
			}
			next.ServeHTTP(w, r.WithContext(composables.WithTenantID(r.Context(), tenantID)))
		})
	}
}

// RequestLogger logs one line per request at debug level.
func RequestLogger(log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.WithFields(logrus.Fields{
				"method": r.Method,
				"path":   r.URL.Path,
			}).Debug("http request")
			next.ServeHTTP(w, r)
		})
	}
}
