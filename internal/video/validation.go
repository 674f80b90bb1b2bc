package video

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// Config contains video upload validation settings
type Config struct {
	MaxSize        int64
	MinTitleLength int
	MaxTitleLength int
	AllowedFormats []string
}

// ValidateUpload checks an upload request against the configured limits.
// It runs before any storage write; a failure here means the blob store is
// never touched.
func (s *Service) ValidateUpload(file *multipart.FileHeader, title string) error {
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "video/") {
		return &ValidationError{
			Field:   "video",
			Message: fmt.Sprintf("unsupported content type: %s", contentType),
		}
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	validExt := false
	for _, format := range s.config.AllowedFormats {
		if ext == format {
			validExt = true
			break
		}
	}
	if !validExt {
		return &ValidationError{
			Field:   "video",
			Message: fmt.Sprintf("unsupported file type: %s, allowed types: %v", ext, s.config.AllowedFormats),
		}
	}

	// A file exactly at the ceiling is accepted, one byte over is not.
	if file.Size > s.config.MaxSize {
		return &ValidationError{
			Field:   "video",
			Message: fmt.Sprintf("file size exceeds maximum allowed size of %d MB", s.config.MaxSize/1024/1024),
		}
	}

	title = strings.TrimSpace(title)
	if len(title) < s.config.MinTitleLength {
		return &ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title must be at least %d characters", s.config.MinTitleLength),
		}
	}
	if len(title) > s.config.MaxTitleLength {
		return &ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title must not exceed %d characters", s.config.MaxTitleLength),
		}
	}

	return nil
}
