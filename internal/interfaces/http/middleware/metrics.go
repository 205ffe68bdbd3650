package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/swarakshak/vidhaan/internal/infrastructure/monitoring/prometheus"
)

// Metrics records per-request counters and latency. The route template is
// used as the path label so parameterized routes stay low-cardinality.
func Metrics(m *prometheus.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		active := m.HTTPActiveRequests.WithLabelValues(method)
		active.Inc()
		start := time.Now()

		c.Next()

		active.Dec()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
