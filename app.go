package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/voltclabs/voltfeed/internal/auth"
	"github.com/voltclabs/voltfeed/internal/category"
	"github.com/voltclabs/voltfeed/internal/config"
	"github.com/voltclabs/voltfeed/internal/database"
	"github.com/voltclabs/voltfeed/internal/feed"
	"github.com/voltclabs/voltfeed/internal/health"
	internalhttp "github.com/voltclabs/voltfeed/internal/http"
	"github.com/voltclabs/voltfeed/internal/logger"
	"github.com/voltclabs/voltfeed/internal/storage/s3"
	"github.com/voltclabs/voltfeed/internal/video"
	"github.com/voltclabs/voltfeed/internal/wallet"
	"gorm.io/gorm"
)

// App holds all application dependencies
type App struct {
	ctx             context.Context
	Config          *config.Config
	db              *gorm.DB
	router          *gin.Engine
	logger          logger.Logger
	sessions        auth.SessionStore
	ResponseHandler internalhttp.ResponseHandler
	Auth            *auth.Service
	Category        *category.Service
	Video           *video.Service
	Blobs           *s3.Service
	Verifier        *wallet.Verifier
}

// NewApp creates a new application instance with all dependencies
func NewApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	db, err := database.NewService(&cfg.Database, log).Connect()
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	responseHandler := internalhttp.NewResponseHandler(log)

	sessions, err := newSessionStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session store: %v", err)
	}

	authService := auth.NewService(&auth.Config{
		AdminPassword: cfg.Auth.AdminPassword,
		SessionTTL:    cfg.Auth.SessionTTL,
	}, sessions, log)

	blobs, err := s3.NewService(&cfg.Storage.S3)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize blob storage: %v", err)
	}

	categoryService := category.NewService(db)
	videoService := video.NewService(db, blobs, categoryService, &video.Config{
		MaxSize:        cfg.Video.MaxSize,
		MinTitleLength: cfg.Video.MinTitleLength,
		MaxTitleLength: cfg.Video.MaxTitleLength,
		AllowedFormats: cfg.Video.AllowedFormats,
	}, log)

	chainClient := wallet.NewClient(cfg.Wallet.RPCURL, cfg.Wallet.TokenAddress)
	verifier := wallet.NewVerifier(chainClient, cfg.Wallet.RequiredBalance)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(internalhttp.RequestLoggerMiddleware(log))

	app := &App{
		ctx:             ctx,
		Config:          cfg,
		db:              db,
		router:          router,
		logger:          log,
		sessions:        sessions,
		ResponseHandler: responseHandler,
		Auth:            authService,
		Category:        categoryService,
		Video:           videoService,
		Blobs:           blobs,
		Verifier:        verifier,
	}

	app.setupRoutes()
	return app, nil
}

// newSessionStore picks the configured session store backend
func newSessionStore(cfg *config.Config) (auth.SessionStore, error) {
	if cfg.Auth.SessionStore == "redis" {
		return auth.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	}
	return auth.NewMemoryStore(cfg.Auth.SessionTTL / 2), nil
}

func (a *App) setupRoutes() {
	adminOnly := auth.Middleware(a.Auth, a.ResponseHandler)

	health.NewHandler(a.ResponseHandler).RegisterRoutes(a.router)
	auth.NewHandler(a.Auth, a.ResponseHandler).RegisterRoutes(a.router)
	category.NewHandler(a.Category, a.ResponseHandler).RegisterRoutes(a.router, adminOnly)
	video.NewHandler(a.Video, a.ResponseHandler).RegisterRoutes(a.router, adminOnly)
	feed.NewHandler(a.Video, a.ResponseHandler).RegisterRoutes(a.router)
	wallet.NewHandler(a.Verifier, a.ResponseHandler).RegisterRoutes(a.router)
}

// Run starts the application
func (a *App) Run() error {
	port := a.Config.Server.Port
	a.logger.LogInfo(fmt.Sprintf("Starting server on port %d", port), nil)
	if err := a.router.Run(fmt.Sprintf(":%d", port)); err != nil {
		return a.logger.LogError(err, "server failed to start")
	}
	return nil
}

// Shutdown releases application resources
func (a *App) Shutdown() error {
	a.logger.LogInfo("Initiating shutdown", nil)

	if a.sessions != nil {
		if err := a.sessions.Close(); err != nil {
			a.logger.LogWarn("Error closing session store", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	if a.db != nil {
		sqlDB, err := a.db.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				a.logger.LogWarn("Error closing database connections", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}

	a.logger.LogInfo("Application shutdown complete", nil)
	return nil
}
