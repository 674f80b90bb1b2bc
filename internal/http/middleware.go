package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestLoggerMiddleware creates a middleware that tags each request with an
// id and logs its completion.
func RequestLoggerMiddleware(log Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set("request_id", requestID)
		start := time.Now()

		c.Next()

		fields := map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
			"request_id": requestID,
			"client_ip":  c.ClientIP(),
		}
		log.LogInfo("Request completed", fields)
	}
}
