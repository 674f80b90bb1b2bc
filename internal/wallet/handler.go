package wallet

import (
	"github.com/gin-gonic/gin"
)

// ResponseHandler defines the interface for handling HTTP responses
type ResponseHandler interface {
	SuccessResponse(c *gin.Context, data interface{}, message string)
	ValidationErrorResponse(c *gin.Context, field, message string)
	InternalErrorResponse(c *gin.Context, message string, err error)
}

// Handler handles HTTP requests for the access check endpoint
type Handler struct {
	verifier        *Verifier
	responseHandler ResponseHandler
}

// NewHandler creates a new wallet handler instance
func NewHandler(verifier *Verifier, responseHandler ResponseHandler) *Handler {
	return &Handler{
		verifier:        verifier,
		responseHandler: responseHandler,
	}
}

// RegisterRoutes registers the access check route
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/access", h.handleAccess)
}

func (h *Handler) handleAccess(c *gin.Context) {
	address := c.Query("address")
	if !ValidAddress(address) {
		h.responseHandler.ValidationErrorResponse(c, "address", "A valid wallet address is required")
		return
	}

	status, err := h.verifier.Verify(c.Request.Context(), address)
	if err != nil {
		h.responseHandler.InternalErrorResponse(c, "Failed to check token balance", err)
		return
	}

	h.responseHandler.SuccessResponse(c, status, "Access status retrieved")
}
