package database

import (
	"fmt"

	"github.com/voltclabs/voltfeed/internal/category"
	"github.com/voltclabs/voltfeed/internal/config"
	"github.com/voltclabs/voltfeed/internal/video"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Logger interface for logging operations
type Logger interface {
	LogInfo(msg string, fields map[string]interface{})
}

// Service wraps the database connection lifecycle
type Service struct {
	config *config.DatabaseConfig
	logger Logger
}

// NewService creates a new database service instance
func NewService(config *config.DatabaseConfig, logger Logger) *Service {
	return &Service{
		config: config,
		logger: logger,
	}
}

// Connect establishes a connection to the database and configures the pool
func (s *Service) Connect() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		s.config.Host,
		s.config.User,
		s.config.Password,
		s.config.Dbname,
		s.config.Port,
		s.config.Sslmode,
		s.config.Timezone,
	)

	s.logger.LogInfo("Connecting to database", map[string]interface{}{
		"host":   s.config.Host,
		"dbname": s.config.Dbname,
		"port":   s.config.Port,
	})

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(s.config.Pool.MaxOpen)
	sqlDB.SetMaxIdleConns(s.config.Pool.MaxIdle)

	return db, nil
}

// Migrate runs schema migrations for all application models
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&category.Category{},
		&video.Video{},
	)
}
