package middleware

import (
	"net/http"

	"catalog-api/internal/transport"

	"go.uber.org/zap"
)

// RequireRole ensures the authenticated user holds one of the allowed roles.
// Must run after Authenticate.
func RequireRole(logger *zap.Logger, allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetUserRole(r.Context())
			if !ok {
				logger.Warn("role not found in context", zap.String("path", r.URL.Path))
				forbidden(w, r)
				return
			}

			for _, allowed := range allowedRoles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.Warn("role not authorized",
				zap.String("role", role),
				zap.Strings("allowed_roles", allowedRoles),
				zap.String("path", r.URL.Path),
			)
			forbidden(w, r)
		})
	}
}

func forbidden(w http.ResponseWriter, r *http.Request) {
	transport.WriteProblem(w, transport.Problem{
		Status:   http.StatusForbidden,
		Title:    "Insufficient permissions.",
		Instance: r.URL.Path,
	})
}
