package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/fixware/console/internal/infrastructure/backend"
)

// HealthHandler reports process liveness and dependency readiness.
type HealthHandler struct {
	redis   *redis.Client
	backend *backend.Client
}

func NewHealthHandler(rdb *redis.Client, bc *backend.Client) *HealthHandler {
	return &HealthHandler{redis: rdb, backend: bc}
}

// Live handles GET /healthz.
func (h *HealthHandler) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Ready handles GET /readyz: the session store must answer a ping and the
// backend must be reachable over HTTP.
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx := c.Request().Context()
	checks := map[string]string{"redis": "ok", "backend": "ok"}
	healthy := true

	if err := h.redis.Ping(ctx).Err(); err != nil {
		checks["redis"] = err.Error()
		healthy = false
	}
	if err := h.backend.Ping(ctx); err != nil {
		checks["backend"] = err.Error()
		healthy = false
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, checks)
}
