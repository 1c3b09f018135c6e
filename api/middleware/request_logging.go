package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"newswire/logger"
)

// RequestLogging logs one line per request with method, path, status
// and duration.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.InfoWithFields("api_request", logger.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  c.GetString("request_id"),
		})
	}
}
