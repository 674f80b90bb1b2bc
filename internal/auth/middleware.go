package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const tokenContextKey = "session_token"

// Middleware guards mutating admin endpoints. It checks the bearer token
// against the session store and aborts with 401 on any mismatch.
func Middleware(service *Service, responseHandler ResponseHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			responseHandler.UnauthorizedResponse(c, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			responseHandler.UnauthorizedResponse(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		token := parts[1]
		if !service.Validate(token) {
			responseHandler.UnauthorizedResponse(c, "Invalid or expired session")
			c.Abort()
			return
		}

		c.Set(tokenContextKey, token)
		c.Next()
	}
}

// SessionToken returns the validated token set by the middleware
func SessionToken(c *gin.Context) string {
	return c.GetString(tokenContextKey)
}
