package health

import (
	"github.com/gin-gonic/gin"
)

// ResponseHandler defines the interface for handling HTTP responses
type ResponseHandler interface {
	SuccessResponse(c *gin.Context, data interface{}, message string)
}

// Handler handles health check related endpoints
type Handler struct {
	responseHandler ResponseHandler
}

// NewHandler creates a new health check handler
func NewHandler(responseHandler ResponseHandler) *Handler {
	return &Handler{
		responseHandler: responseHandler,
	}
}

// RegisterRoutes registers the health check route
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.HandleHealthCheck)
}

// HandleHealthCheck reports that the API server is running
func (h *Handler) HandleHealthCheck(c *gin.Context) {
	h.responseHandler.SuccessResponse(c, nil, "Health check successful")
}
