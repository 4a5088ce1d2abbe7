package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"storyspark-api/application/ports/outbound"
)

// RequestLogger logs one structured line per request through the shared
// logger port.
func RequestLogger(logger outbound.LoggerPort) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.InfoWithFields("request", map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
		})
	}
}
