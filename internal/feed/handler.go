package feed

import (
	"math/rand"

	"github.com/gin-gonic/gin"
	"github.com/voltclabs/voltfeed/internal/video"
)

// VideoLister supplies the full video sequence for the feed
type VideoLister interface {
	List(categoryID *uint) ([]video.WithCategory, error)
}

// ResponseHandler defines the interface for handling HTTP responses
type ResponseHandler interface {
	SuccessResponse(c *gin.Context, data interface{}, message string)
	InternalErrorResponse(c *gin.Context, message string, err error)
}

// Handler serves the feed sequence
type Handler struct {
	videos          VideoLister
	responseHandler ResponseHandler
}

// NewHandler creates a new feed handler instance
func NewHandler(videos VideoLister, responseHandler ResponseHandler) *Handler {
	return &Handler{
		videos:          videos,
		responseHandler: responseHandler,
	}
}

// RegisterRoutes registers the feed route
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/feed", h.handleFeed)
}

// handleFeed returns the video sequence with its order randomized once per
// load.
func (h *Handler) handleFeed(c *gin.Context) {
	videos, err := h.videos.List(nil)
	if err != nil {
		h.responseHandler.InternalErrorResponse(c, "Failed to fetch feed", err)
		return
	}

	rand.Shuffle(len(videos), func(i, j int) {
		videos[i], videos[j] = videos[j], videos[i]
	})

	h.responseHandler.SuccessResponse(c, videos, "Feed retrieved successfully")
}
