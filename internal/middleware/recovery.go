package middleware

import (
	"net/http"

	"catalog-api/internal/transport"

	"go.uber.org/zap"
)

// Recovery converts panics into 500 problem responses.
func Recovery(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						zap.Any("error", rec),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
					)

					transport.WriteProblem(w, transport.Problem{
						Status:   http.StatusInternalServerError,
						Title:    "An unexpected error occurred.",
						Instance: r.URL.Path,
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
