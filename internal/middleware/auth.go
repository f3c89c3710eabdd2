package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"catalog-api/internal/features/auth"
	"catalog-api/internal/transport"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	UsernameKey contextKey = "username"
	UserRoleKey contextKey = "user_role"
)

// Authenticate validates the bearer token and loads its claims into the
// request context.
func Authenticate(tokens *auth.TokenService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Debug("missing authorization header")
				unauthorized(w, r, "missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.Debug("invalid authorization header format")
				unauthorized(w, r, "invalid authorization header format")
				return
			}

			claims, err := tokens.Parse(parts[1])
			if err != nil {
				logger.Debug("token validation failed", zap.Error(err))
				if errors.Is(err, jwt.ErrTokenExpired) {
					unauthorized(w, r, "token expired")
				} else {
					unauthorized(w, r, "invalid token")
				}
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID.String())
			ctx = context.WithValue(ctx, UsernameKey, claims.Username)
			ctx = context.WithValue(ctx, UserRoleKey, claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the authenticated user id from the request context.
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}

// GetUserRole extracts the authenticated user's role from the request context.
func GetUserRole(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(UserRoleKey).(string)
	return role, ok
}

func unauthorized(w http.ResponseWriter, r *http.Request, detail string) {
	transport.WriteProblem(w, transport.Problem{
		Status:   http.StatusUnauthorized,
		Title:    "Authentication required.",
		Detail:   detail,
		Instance: r.URL.Path,
	})
}
