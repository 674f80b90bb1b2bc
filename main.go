package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/voltclabs/voltfeed/internal/config"
	"github.com/voltclabs/voltfeed/internal/logger"
)

func main() {
	ctx := context.Background()

	// Bootstrap logger; reconfigured from file config once it is loaded
	loggerService, err := logger.NewService(&logger.Config{Level: "info", Format: "text"})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	cfg, err := config.NewService(loggerService).Load(".")
	if err != nil {
		loggerService.LogFatal(err, "Failed to load configuration")
	}

	loggerService, err = logger.NewService(&cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to configure logger: %v", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		loggerService.LogInfo("Received shutdown signal", nil)
		cancel()
	}()

	app, err := NewApp(ctx, cfg, loggerService)
	if err != nil {
		loggerService.LogFatal(err, "Failed to initialize application")
	}

	if err := app.Run(); err != nil {
		loggerService.LogError(err, "Application error")
	}

	if err := app.Shutdown(); err != nil {
		os.Exit(1)
	}
}
