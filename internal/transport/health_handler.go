package transport

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// HealthStatus is the aggregate health report for the service.
type HealthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthHandler probes the service's dependencies. Degraded dependencies
// turn the aggregate status to "unhealthy" and the response to 503.
type HealthHandler struct {
	db      *sql.DB
	redis   *redis.Client
	storage interface{ Health() error }
	logger  *zap.Logger
}

func NewHealthHandler(db *sql.DB, redisClient *redis.Client, storage interface{ Health() error }, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient, storage: storage, logger: logger}
}

func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Check)
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	status := HealthStatus{Status: "healthy", Checks: map[string]string{}}

	record := func(name string, err error) {
		if err != nil {
			h.logger.Warn("health check failed", zap.String("check", name), zap.Error(err))
			status.Status = "unhealthy"
			status.Checks[name] = "unhealthy"
			return
		}
		status.Checks[name] = "healthy"
	}

	record("database", h.db.PingContext(ctx))
	stats := h.db.Stats()
	h.logger.Debug("connection pool stats",
		zap.Int("open", stats.OpenConnections),
		zap.Int("in_use", stats.InUse),
		zap.Int("idle", stats.Idle))
	if h.redis != nil {
		record("redis", h.redis.Ping(ctx).Err())
	}
	if h.storage != nil {
		record("storage", h.storage.Health())
	}

	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	RespondJSON(w, code, status)
}
