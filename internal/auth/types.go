package auth

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Config represents admin authentication configuration
type Config struct {
	AdminPassword string
	SessionTTL    time.Duration
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token string `json:"token"`
}

// ResponseHandler defines the interface for handling HTTP responses
type ResponseHandler interface {
	SuccessResponse(c *gin.Context, data interface{}, message string)
	ErrorResponse(c *gin.Context, status int, code, message string, err error)
	ValidationErrorResponse(c *gin.Context, field, message string)
	UnauthorizedResponse(c *gin.Context, message string)
}

// Logger interface for logging operations
type Logger interface {
	LogInfo(msg string, fields map[string]interface{})
	LogWarn(msg string, fields map[string]interface{})
	LogError(err error, msg string) error
}
