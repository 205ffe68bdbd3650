package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/swarakshak/vidhaan/internal/infrastructure/monitoring/logging"
)

// LoggingConfig tunes the request logging middleware.
type LoggingConfig struct {
	// SkipPaths are not logged at all, for high-frequency probe endpoints.
	SkipPaths []string

	// SlowThreshold promotes requests slower than this to Warn level.
	SlowThreshold time.Duration
}

// DefaultLoggingConfig skips health probes and flags requests over 3s.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		SkipPaths:     []string{"/healthz", "/readyz", "/metrics"},
		SlowThreshold: 3 * time.Second,
	}
}

// RequestLogging logs one line per completed request. Query text is never
// logged, only method, path, status and timing.
func RequestLogging(log logging.Logger, cfg LoggingConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		status := c.Writer.Status()
		fields := []logging.Field{
			logging.String("method", c.Request.Method),
			logging.String("path", c.Request.URL.Path),
			logging.Int("status", status),
			logging.Duration("duration", elapsed),
			logging.Int("bytes", c.Writer.Size()),
			logging.String("request_id", GetRequestID(c)),
		}

		switch {
		case status >= 500:
			log.Error("request failed", fields...)
		case status >= 400:
			log.Warn("request rejected", fields...)
		case cfg.SlowThreshold > 0 && elapsed >= cfg.SlowThreshold:
			log.Warn("slow request", fields...)
		default:
			log.Info("request completed", fields...)
		}
	}
}
