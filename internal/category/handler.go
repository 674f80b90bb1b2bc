package category

import (
	"errors"
	stdhttp "net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ResponseHandler defines the interface for handling HTTP responses
type ResponseHandler interface {
	SuccessResponse(c *gin.Context, data interface{}, message string)
	CreatedResponse(c *gin.Context, data interface{}, message string)
	ErrorResponse(c *gin.Context, status int, code, message string, err error)
	ValidationErrorResponse(c *gin.Context, field, message string)
	NotFoundResponse(c *gin.Context, message string)
	InternalErrorResponse(c *gin.Context, message string, err error)
}

// Handler handles HTTP requests for category endpoints
type Handler struct {
	service         *Service
	responseHandler ResponseHandler
}

// NewHandler creates a new category handler instance
func NewHandler(service *Service, responseHandler ResponseHandler) *Handler {
	return &Handler{
		service:         service,
		responseHandler: responseHandler,
	}
}

// RegisterRoutes registers category routes. Mutations require the admin
// session middleware passed by the caller.
func (h *Handler) RegisterRoutes(router *gin.Engine, adminOnly gin.HandlerFunc) {
	router.GET("/api/categories", h.handleList)
	router.POST("/api/categories", adminOnly, h.handleCreate)
	router.DELETE("/api/categories/:id", adminOnly, h.handleDelete)
}

func (h *Handler) handleList(c *gin.Context) {
	categories, err := h.service.List()
	if err != nil {
		h.responseHandler.InternalErrorResponse(c, "Failed to fetch categories", err)
		return
	}
	h.responseHandler.SuccessResponse(c, categories, "Categories retrieved successfully")
}

func (h *Handler) handleCreate(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responseHandler.ValidationErrorResponse(c, "name", "Invalid request format")
		return
	}

	cat, err := h.service.Create(req.Name)
	if err != nil {
		if errors.Is(err, ErrEmptyName) {
			h.responseHandler.ValidationErrorResponse(c, "name", "Category name required")
			return
		}
		h.responseHandler.InternalErrorResponse(c, "Failed to create category", err)
		return
	}

	h.responseHandler.CreatedResponse(c, cat, "Category created successfully")
}

func (h *Handler) handleDelete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		h.responseHandler.ValidationErrorResponse(c, "id", "Invalid category id")
		return
	}

	if err := h.service.Delete(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.responseHandler.NotFoundResponse(c, "Category not found")
			return
		}
		h.responseHandler.ErrorResponse(c, stdhttp.StatusInternalServerError, "DELETE_FAILED", "Failed to delete category", err)
		return
	}

	h.responseHandler.SuccessResponse(c, nil, "Category deleted successfully")
}
