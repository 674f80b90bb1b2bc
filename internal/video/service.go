package video

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/voltclabs/voltfeed/internal/storage/s3"
	"gorm.io/gorm"
)

// BlobStore is the blob storage service used for video binaries
type BlobStore interface {
	UploadStream(ctx context.Context, key string, file io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) string
}

// CategoryResolver supplies the fallback category for uploads without one
type CategoryResolver interface {
	EnsureDefault() (uint, error)
}

// Logger interface for logging operations
type Logger interface {
	LogInfo(msg string, fields map[string]interface{})
	LogWarn(msg string, fields map[string]interface{})
	LogError(err error, msg string) error
}

// Service handles video-related business logic
type Service struct {
	db         *gorm.DB
	blobs      BlobStore
	categories CategoryResolver
	config     *Config
	logger     Logger
}

// NewService creates a new video service instance
func NewService(db *gorm.DB, blobs BlobStore, categories CategoryResolver, config *Config, logger Logger) *Service {
	return &Service{
		db:         db,
		blobs:      blobs,
		categories: categories,
		config:     config,
		logger:     logger,
	}
}

// List retrieves videos joined with their category name, optionally filtered
// by category, ordered by display order then recency.
func (s *Service) List(categoryID *uint) ([]WithCategory, error) {
	var videos []WithCategory
	query := s.db.Table("videos").
		Select("videos.*, categories.name as category_name").
		Joins("LEFT JOIN categories ON videos.category_id = categories.id").
		Order("videos.display_order, videos.created_at DESC")

	if categoryID != nil {
		query = query.Where("videos.category_id = ?", *categoryID)
	}

	if err := query.Scan(&videos).Error; err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	return videos, nil
}

// Get retrieves a single video by id
func (s *Service) Get(id uint) (*Video, error) {
	var v Video
	if err := s.db.First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// Upload runs the upload pipeline: validate, store the bytes, then record the
// metadata row. Validation failures reject the request before any storage
// write. Blob write and metadata insert are two independent steps; if the
// insert fails a compensating blob delete is attempted once and logged, never
// retried.
func (s *Service) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, title string, categoryID *uint, duration string) (*Video, error) {
	if err := s.ValidateUpload(header, title); err != nil {
		return nil, err
	}

	contentType := header.Header.Get("Content-Type")
	key := s3.GenerateKey(header.Filename)

	url, err := s.blobs.UploadStream(ctx, key, file, header.Size, contentType)
	if err != nil {
		return nil, &StorageError{Message: "failed to store video file", Cause: err}
	}

	if categoryID == nil {
		defaultID, err := s.categories.EnsureDefault()
		if err != nil {
			s.compensateBlob(ctx, key)
			return nil, err
		}
		categoryID = &defaultID
	}

	var maxOrder struct{ Max int }
	if err := s.db.Table("videos").
		Select("COALESCE(MAX(display_order), 0) as max").
		Scan(&maxOrder).Error; err != nil {
		s.compensateBlob(ctx, key)
		return nil, fmt.Errorf("failed to compute display order: %w", err)
	}

	if duration == "" {
		duration = "0:00"
	}

	v := &Video{
		Title:        strings.TrimSpace(title),
		CategoryID:   categoryID,
		URL:          url,
		Duration:     duration,
		DisplayOrder: maxOrder.Max + 1,
		CreatedAt:    time.Now(),
	}

	if err := s.db.Create(v).Error; err != nil {
		s.compensateBlob(ctx, key)
		return nil, fmt.Errorf("failed to create video record: %w", err)
	}

	s.logger.LogInfo("Video uploaded", map[string]interface{}{
		"id":    v.ID,
		"key":   key,
		"title": v.Title,
		"size":  header.Size,
	})
	return v, nil
}

// Delete removes a video row and attempts to delete the backing blob. Row
// removal is authoritative; a failed blob delete leaves an orphaned object
// and is only logged.
func (s *Service) Delete(ctx context.Context, id uint) error {
	var v Video
	if err := s.db.First(&v, id).Error; err != nil {
		return err
	}

	if err := s.db.Delete(&v).Error; err != nil {
		return fmt.Errorf("failed to delete video record: %w", err)
	}

	if key := s.blobs.KeyFromURL(v.URL); key != "" {
		if err := s.blobs.Delete(ctx, key); err != nil {
			s.logger.LogWarn("Failed to delete backing blob, object orphaned", map[string]interface{}{
				"id":    id,
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	return nil
}

// compensateBlob removes a blob written before a failed metadata insert.
// Best effort only.
func (s *Service) compensateBlob(ctx context.Context, key string) {
	if err := s.blobs.Delete(ctx, key); err != nil {
		s.logger.LogWarn("Failed to remove blob after metadata failure, object orphaned", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}
