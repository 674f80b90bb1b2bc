package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	miniocreds "github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/voltclabs/voltfeed/internal/config"
)

// Service handles blob storage operations against an S3-compatible store
// (Cloudflare R2 in production).
type Service struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewService creates a new blob storage service instance
func NewService(cfg *config.S3Config) (*Service, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  miniocreds.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %v", err)
	}

	return &Service{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// UploadStream uploads a file stream under the given key and returns the
// publicly fetchable URL.
func (s *Service) UploadStream(ctx context.Context, key string, file io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, file, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %v", err)
	}

	return s.PublicURL(key), nil
}

// Delete removes the object stored under the given key
func (s *Service) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object from S3: %v", err)
	}
	return nil
}

// PublicURL returns the public URL for a stored key
func (s *Service) PublicURL(key string) string {
	return s.publicURL + "/" + key
}

// KeyFromURL extracts the storage key from a public URL previously returned
// by this service. Returns empty when the URL is not under the public base.
func (s *Service) KeyFromURL(url string) string {
	prefix := s.publicURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return ""
	}
	return strings.TrimPrefix(url, prefix)
}
