package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/communitybook/listing-service/internal/platform/logger"
)

// RequestLogger logs every HTTP request with its outcome and duration.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		if status >= 500 {
			log.Error("HTTP request failed",
				"method", c.Request.Method, "path", c.Request.URL.Path,
				"status", status, "duration", duration.String())
			return
		}
		log.Info("HTTP request completed",
			"method", c.Request.Method, "path", c.Request.URL.Path,
			"status", status, "duration", duration.String())
	}
}
