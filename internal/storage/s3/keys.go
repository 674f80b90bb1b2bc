package s3

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateKey builds a collision-resistant object key for an uploaded file:
// a timestamp plus a random suffix, keeping the original extension.
func GenerateKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".mp4"
	}
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("videos/%d-%s%s", time.Now().UnixMilli(), suffix, ext)
}
