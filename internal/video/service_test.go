package video_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"github.com/voltclabs/voltfeed/internal/category"
	"github.com/voltclabs/voltfeed/internal/video"
	"github.com/voltclabs/voltfeed/testhelper"
	"gorm.io/gorm"
)

const publicBase = "https://media.test/"

// mockBlobStore counts calls so tests can assert storage is never touched on
// rejected uploads.
type mockBlobStore struct {
	uploads   int
	deletes   int
	lastKey   string
	deleted   []string
	uploadErr error
	deleteErr error
}

func (m *mockBlobStore) UploadStream(ctx context.Context, key string, file io.Reader, size int64, contentType string) (string, error) {
	m.uploads++
	m.lastKey = key
	if m.uploadErr != nil {
		return "", m.uploadErr
	}
	return publicBase + key, nil
}

func (m *mockBlobStore) Delete(ctx context.Context, key string) error {
	m.deletes++
	m.deleted = append(m.deleted, key)
	return m.deleteErr
}

func (m *mockBlobStore) KeyFromURL(url string) string {
	return strings.TrimPrefix(url, publicBase)
}

type noopLogger struct{}

func (noopLogger) LogInfo(msg string, fields map[string]interface{}) {}
func (noopLogger) LogWarn(msg string, fields map[string]interface{}) {}
func (noopLogger) LogError(err error, msg string) error              { return err }

// fakeFile adapts a bytes.Reader to the multipart.File interface
type fakeFile struct {
	*bytes.Reader
}

func (fakeFile) Close() error { return nil }

func openUpload(filename, contentType string, size int64) (multipart.File, *multipart.FileHeader) {
	header := &multipart.FileHeader{
		Filename: filename,
		Size:     size,
		Header:   textproto.MIMEHeader{},
	}
	header.Header.Set("Content-Type", contentType)
	return fakeFile{bytes.NewReader(make([]byte, 16))}, header
}

func testConfig() *video.Config {
	return &video.Config{
		MaxSize:        1024 * 1024,
		MinTitleLength: 3,
		MaxTitleLength: 100,
		AllowedFormats: []string{".mp4", ".mov"},
	}
}

func newTestService(t *testing.T) (*video.Service, *mockBlobStore, *gorm.DB) {
	t.Helper()
	db := testhelper.SetupTestDB(t)
	blobs := &mockBlobStore{}
	service := video.NewService(db, blobs, category.NewService(db), testConfig(), noopLogger{})
	return service, blobs, db
}

func TestUploadStoresBlobAndRecord(t *testing.T) {
	service, blobs, db := newTestService(t)

	file, header := openUpload("clip.mp4", "video/mp4", 1024)
	v, err := service.Upload(context.Background(), file, header, "  First clip  ", nil, "")
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if blobs.uploads != 1 {
		t.Errorf("expected 1 storage write, got %d", blobs.uploads)
	}
	if v.Title != "First clip" {
		t.Errorf("expected trimmed title, got %q", v.Title)
	}
	if v.URL != publicBase+blobs.lastKey {
		t.Errorf("expected URL to resolve to the stored blob, got %q", v.URL)
	}
	if v.Duration != "0:00" {
		t.Errorf("expected default duration 0:00, got %q", v.Duration)
	}
	if v.DisplayOrder != 1 {
		t.Errorf("expected first video at display order 1, got %d", v.DisplayOrder)
	}

	// Without an explicit category the upload lands in the fallback one
	if v.CategoryID == nil {
		t.Fatal("expected a category id")
	}
	var cat category.Category
	if err := db.First(&cat, *v.CategoryID).Error; err != nil {
		t.Fatalf("failed to load category: %v", err)
	}
	if cat.Name != category.DefaultName {
		t.Errorf("expected fallback category %q, got %q", category.DefaultName, cat.Name)
	}
}

func TestUploadAppendsDisplayOrder(t *testing.T) {
	service, _, _ := newTestService(t)

	for i, want := range []int{1, 2, 3} {
		file, header := openUpload("clip.mp4", "video/mp4", 1024)
		v, err := service.Upload(context.Background(), file, header, "clip", nil, "1:00")
		if err != nil {
			t.Fatalf("upload %d failed: %v", i, err)
		}
		if v.DisplayOrder != want {
			t.Errorf("upload %d: expected display order %d, got %d", i, want, v.DisplayOrder)
		}
	}
}

func TestUploadRejectsNonVideoContentType(t *testing.T) {
	service, blobs, _ := newTestService(t)

	file, header := openUpload("image.mp4", "image/png", 1024)
	_, err := service.Upload(context.Background(), file, header, "not a video", nil, "")

	var validationErr *video.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if blobs.uploads != 0 {
		t.Errorf("rejected upload must not touch storage, got %d writes", blobs.uploads)
	}
}

func TestUploadRejectsDisallowedExtension(t *testing.T) {
	service, blobs, _ := newTestService(t)

	file, header := openUpload("clip.avi", "video/x-msvideo", 1024)
	_, err := service.Upload(context.Background(), file, header, "avi clip", nil, "")

	var validationErr *video.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if blobs.uploads != 0 {
		t.Errorf("rejected upload must not touch storage, got %d writes", blobs.uploads)
	}
}

func TestUploadSizeCeiling(t *testing.T) {
	service, blobs, _ := newTestService(t)
	maxSize := testConfig().MaxSize

	// Exactly at the ceiling passes
	file, header := openUpload("clip.mp4", "video/mp4", maxSize)
	if _, err := service.Upload(context.Background(), file, header, "at the limit", nil, ""); err != nil {
		t.Fatalf("upload at the size ceiling should succeed: %v", err)
	}

	// One byte over is rejected before any storage write
	writes := blobs.uploads
	file, header = openUpload("clip.mp4", "video/mp4", maxSize+1)
	_, err := service.Upload(context.Background(), file, header, "over the limit", nil, "")
	var validationErr *video.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if blobs.uploads != writes {
		t.Error("oversized upload must not touch storage")
	}
}

func TestUploadTitleBounds(t *testing.T) {
	service, _, _ := newTestService(t)

	file, header := openUpload("clip.mp4", "video/mp4", 1024)
	if _, err := service.Upload(context.Background(), file, header, "ab", nil, ""); err == nil {
		t.Error("expected a too-short title to be rejected")
	}

	file, header = openUpload("clip.mp4", "video/mp4", 1024)
	if _, err := service.Upload(context.Background(), file, header, strings.Repeat("x", 101), nil, ""); err == nil {
		t.Error("expected a too-long title to be rejected")
	}
}

func TestUploadStorageFailure(t *testing.T) {
	service, blobs, db := newTestService(t)
	blobs.uploadErr = errors.New("bucket unreachable")

	file, header := openUpload("clip.mp4", "video/mp4", 1024)
	_, err := service.Upload(context.Background(), file, header, "doomed clip", nil, "")

	var storageErr *video.StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected StorageError, got %v", err)
	}

	// No metadata row is left behind for a failed blob write
	var count int64
	if err := db.Model(&video.Video{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count videos: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no video rows after storage failure, got %d", count)
	}
}

func TestDeleteRemovesRowAndBlob(t *testing.T) {
	service, blobs, db := newTestService(t)

	file, header := openUpload("clip.mp4", "video/mp4", 1024)
	v, err := service.Upload(context.Background(), file, header, "short lived", nil, "")
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	key := blobs.lastKey

	if err := service.Delete(context.Background(), v.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	var count int64
	if err := db.Model(&video.Video{}).Where("id = ?", v.ID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count videos: %v", err)
	}
	if count != 0 {
		t.Error("expected video row to be removed")
	}
	if blobs.deletes != 1 || blobs.deleted[0] != key {
		t.Errorf("expected blob %q to be deleted, got %v", key, blobs.deleted)
	}
}

func TestDeleteSurvivesBlobFailure(t *testing.T) {
	service, blobs, db := newTestService(t)

	file, header := openUpload("clip.mp4", "video/mp4", 1024)
	v, err := service.Upload(context.Background(), file, header, "orphan maker", nil, "")
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	// Row removal stays authoritative even when the blob delete fails
	blobs.deleteErr = errors.New("bucket unreachable")
	if err := service.Delete(context.Background(), v.ID); err != nil {
		t.Fatalf("delete should succeed despite blob failure: %v", err)
	}

	var count int64
	if err := db.Model(&video.Video{}).Where("id = ?", v.ID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count videos: %v", err)
	}
	if count != 0 {
		t.Error("expected video row to be removed")
	}
}

func TestDeleteMissingVideo(t *testing.T) {
	service, _, _ := newTestService(t)
	if err := service.Delete(context.Background(), 42); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestListOrderingAndJoin(t *testing.T) {
	service, _, db := newTestService(t)

	cats := category.NewService(db)
	sports, err := cats.Create("Sports")
	if err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	rows := []video.Video{
		{Title: "third", CategoryID: &sports.ID, URL: publicBase + "videos/c.mp4", DisplayOrder: 3},
		{Title: "first", CategoryID: &sports.ID, URL: publicBase + "videos/a.mp4", DisplayOrder: 1},
		{Title: "second", URL: publicBase + "videos/b.mp4", DisplayOrder: 2},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("failed to seed video: %v", err)
		}
	}

	videos, err := service.List(nil)
	if err != nil {
		t.Fatalf("failed to list videos: %v", err)
	}
	if len(videos) != 3 {
		t.Fatalf("expected 3 videos, got %d", len(videos))
	}
	for i, want := range []string{"first", "second", "third"} {
		if videos[i].Title != want {
			t.Errorf("position %d: expected %q, got %q", i, want, videos[i].Title)
		}
	}
	if videos[0].CategoryName != "Sports" {
		t.Errorf("expected joined category name Sports, got %q", videos[0].CategoryName)
	}
	if videos[1].CategoryName != "" {
		t.Errorf("expected empty category name for detached video, got %q", videos[1].CategoryName)
	}

	filtered, err := service.List(&sports.ID)
	if err != nil {
		t.Fatalf("failed to list filtered videos: %v", err)
	}
	if len(filtered) != 2 {
		t.Fatalf("expected 2 videos under Sports, got %d", len(filtered))
	}
}

func TestGet(t *testing.T) {
	service, _, db := newTestService(t)

	seeded := video.Video{Title: "lone clip", URL: publicBase + "videos/x.mp4"}
	if err := db.Create(&seeded).Error; err != nil {
		t.Fatalf("failed to seed video: %v", err)
	}

	v, err := service.Get(seeded.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if v.Title != "lone clip" {
		t.Errorf("expected title %q, got %q", "lone clip", v.Title)
	}

	if _, err := service.Get(999); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}
