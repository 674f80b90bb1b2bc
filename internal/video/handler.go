package video

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

// Handler handles HTTP requests for video endpoints
type Handler struct {
	service         *Service
	responseHandler ResponseHandler
}

// NewHandler creates a new video handler instance
func NewHandler(service *Service, responseHandler ResponseHandler) *Handler {
	return &Handler{
		service:         service,
		responseHandler: responseHandler,
	}
}

// RegisterRoutes registers video routes. Mutations require the admin session
// middleware passed by the caller.
func (h *Handler) RegisterRoutes(router *gin.Engine, adminOnly gin.HandlerFunc) {
	router.GET("/api/videos", h.handleList)
	router.GET("/api/videos/:id", h.handleGet)
	router.POST("/api/videos/upload", adminOnly, h.handleUpload)
	router.DELETE("/api/videos/:id", adminOnly, h.handleDelete)
}

func (h *Handler) handleList(c *gin.Context) {
	var categoryID *uint
	if raw := c.Query("categoryId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			h.responseHandler.ValidationErrorResponse(c, "categoryId", "Invalid category id")
			return
		}
		parsed := uint(id)
		categoryID = &parsed
	}

	videos, err := h.service.List(categoryID)
	if err != nil {
		h.responseHandler.InternalErrorResponse(c, "Failed to fetch videos", err)
		return
	}
	h.responseHandler.SuccessResponse(c, videos, "Videos retrieved successfully")
}

func (h *Handler) handleGet(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		h.responseHandler.ValidationErrorResponse(c, "id", "Invalid video id")
		return
	}

	v, err := h.service.Get(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.responseHandler.NotFoundResponse(c, "Video not found")
			return
		}
		h.responseHandler.InternalErrorResponse(c, "Failed to fetch video", err)
		return
	}
	h.responseHandler.SuccessResponse(c, v, "Video retrieved successfully")
}

func (h *Handler) handleUpload(c *gin.Context) {
	file, fileHeader, err := c.Request.FormFile("video")
	if err != nil {
		h.responseHandler.ErrorResponse(c, stdhttp.StatusBadRequest, "ERR_NO_FILE", "No video file received", err)
		return
	}
	defer file.Close()

	title := c.PostForm("title")
	duration := c.PostForm("duration")

	var categoryID *uint
	if raw := c.PostForm("categoryId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			h.responseHandler.ValidationErrorResponse(c, "categoryId", "Invalid category id")
			return
		}
		parsed := uint(id)
		categoryID = &parsed
	}

	v, err := h.service.Upload(c.Request.Context(), file, fileHeader, title, categoryID, duration)
	if err != nil {
		var validationErr *ValidationError
		var storageErr *StorageError
		switch {
		case errors.As(err, &validationErr):
			h.responseHandler.ValidationErrorResponse(c, validationErr.Field, validationErr.Message)
		case errors.As(err, &storageErr):
			h.responseHandler.ErrorResponse(c, stdhttp.StatusInternalServerError, "ERR_STORAGE", "Failed to store video file", err)
		default:
			h.responseHandler.InternalErrorResponse(c, "Failed to upload video", err)
		}
		return
	}

	h.responseHandler.CreatedResponse(c, v, "Video uploaded successfully")
}

func (h *Handler) handleDelete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		h.responseHandler.ValidationErrorResponse(c, "id", "Invalid video id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.responseHandler.NotFoundResponse(c, "Video not found")
			return
		}
		h.responseHandler.ErrorResponse(c, stdhttp.StatusInternalServerError, "DELETE_FAILED", "Failed to delete video", err)
		return
	}

	h.responseHandler.SuccessResponse(c, nil, "Video deleted successfully")
}
