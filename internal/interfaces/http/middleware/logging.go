package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/voracio/sheetsense/internal/infrastructure/monitoring/logging"
)

// HTTPMetrics receives one observation per served request.
type HTTPMetrics interface {
	ObserveHTTPRequest(method, path string, status int, took time.Duration)
}

// Logging logs each request on completion and feeds the metrics sink.
// metrics may be nil.
func Logging(logger logging.Logger, metrics HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		took := time.Since(start)

		// FullPath is the route template, keeping label cardinality bounded.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := c.Writer.Status()
		if metrics != nil {
			metrics.ObserveHTTPRequest(c.Request.Method, path, status, took)
		}

		fields := []logging.Field{
			logging.String("request_id", c.GetString(ContextRequestID)),
			logging.String("method", c.Request.Method),
			logging.String("path", c.Request.URL.Path),
			logging.Int("status", status),
			logging.Duration("took", took),
		}
		if status >= 500 {
			logger.Error("request failed", fields...)
		} else {
			logger.Info("request served", fields...)
		}
	}
}
