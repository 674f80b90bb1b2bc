package auth

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for admin auth endpoints
type Handler struct {
	service         *Service
	responseHandler ResponseHandler
}

// NewHandler creates a new auth handler instance
func NewHandler(service *Service, responseHandler ResponseHandler) *Handler {
	return &Handler{
		service:         service,
		responseHandler: responseHandler,
	}
}

// RegisterRoutes registers all admin auth routes
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	admin := router.Group("/api/admin")
	{
		admin.POST("/login", h.handleLogin)

		protected := admin.Group("")
		protected.Use(Middleware(h.service, h.responseHandler))
		protected.POST("/logout", h.handleLogout)
		protected.GET("/me", h.handleMe)
	}
}

func (h *Handler) handleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responseHandler.ValidationErrorResponse(c, "password", "Password is required")
		return
	}

	token, err := h.service.Login(req.Password)
	if err != nil {
		h.responseHandler.ErrorResponse(c, stdhttp.StatusUnauthorized, "AUTH_ERROR", "Invalid password", nil)
		return
	}

	h.responseHandler.SuccessResponse(c, LoginResponse{Token: token}, "Login successful")
}

func (h *Handler) handleLogout(c *gin.Context) {
	token := SessionToken(c)
	if err := h.service.Logout(token); err != nil {
		h.responseHandler.ErrorResponse(c, stdhttp.StatusInternalServerError, "LOGOUT_ERROR", "Failed to end session", err)
		return
	}
	h.responseHandler.SuccessResponse(c, nil, "Logout successful")
}

func (h *Handler) handleMe(c *gin.Context) {
	h.responseHandler.SuccessResponse(c, gin.H{"isAdmin": true}, "Authenticated")
}
