// Package http builds the gin route tree and HTTP server for the public API.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/swarakshak/vidhaan/internal/infrastructure/monitoring/logging"
	"github.com/swarakshak/vidhaan/internal/infrastructure/monitoring/prometheus"
	"github.com/swarakshak/vidhaan/internal/interfaces/http/handlers"
	"github.com/swarakshak/vidhaan/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handlers and infrastructure the route tree
// needs.
type RouterConfig struct {
	AskHandler    *handlers.AskHandler
	ClauseHandler *handlers.ClauseHandler
	HealthHandler *handlers.HealthHandler

	Logger           logging.Logger
	Metrics          *prometheus.AppMetrics
	MetricsCollector prometheus.MetricsCollector

	// Mode is the gin mode: "debug", "release" or "test".
	Mode string
}

// NewRouter constructs the complete route tree.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	log := cfg.Logger
	if log == nil {
		log = logging.NewNopLogger()
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestLogging(log, middleware.DefaultLoggingConfig()))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	r.Use(middleware.ErrorHandler(log))

	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.Liveness)
		r.GET("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.MetricsCollector != nil {
		r.GET("/metrics", gin.WrapH(cfg.MetricsCollector.Handler()))
	}

	api := r.Group("/api/v1")
	{
		if cfg.AskHandler != nil {
			api.POST("/ask", cfg.AskHandler.Ask)
			api.DELETE("/sessions/:id", cfg.AskHandler.ClearSession)
		}
		if cfg.ClauseHandler != nil {
			api.POST("/clauses", cfg.ClauseHandler.Process)
		}
	}

	return r
}
