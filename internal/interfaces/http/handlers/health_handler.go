package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/swarakshak/vidhaan/internal/infrastructure/monitoring/logging"
)

const checkTimeout = 2 * time.Second

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	checks map[string]HealthCheck
	log    logging.Logger
}

// NewHealthHandler builds a HealthHandler with named dependency checks.
func NewHealthHandler(checks map[string]HealthCheck, log logging.Logger) *HealthHandler {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &HealthHandler{checks: checks, log: log}
}

// Liveness reports that the process is up.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness runs every dependency check and reports 503 if any fails.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
	defer cancel()

	results := make(map[string]string, len(h.checks))
	healthy := true
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			healthy = false
			results[name] = err.Error()
			h.log.Warn("readiness check failed", logging.String("check", name), logging.Err(err))
		} else {
			results[name] = "ok"
		}
	}

	status := http.StatusOK
	body := gin.H{"status": "ready", "checks": results}
	if !healthy {
		status = http.StatusServiceUnavailable
		body["status"] = "degraded"
	}
	c.JSON(status, body)
}
