package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/blogapi/logger"
)

// RequestLogger logs each completed request at a level chosen by its status
// code. Health checks are skipped to keep probe noise out of the logs.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	requestLog := log.WithComponent("http")

	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      status,
			"duration_ms": time.Since(start).Milliseconds(),
			"client_ip":   c.ClientIP(),
			"request_id":  GetRequestID(c),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		switch {
		case status >= 500:
			requestLog.Error("Request failed", fields)
		case status >= 400:
			requestLog.Warn("Request rejected", fields)
		default:
			requestLog.Info("Request completed", fields)
		}
	}
}
