package testhelper

import (
	"testing"

	"github.com/glebarez/sqlite"
	_ "github.com/joho/godotenv/autoload"
	"github.com/voltclabs/voltfeed/internal/category"
	"github.com/voltclabs/voltfeed/internal/video"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SetupTestDB opens an isolated in-memory database with the application
// schema migrated. Each call returns a fresh database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&category.Category{}, &video.Video{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}
