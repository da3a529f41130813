package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yungbote/learnpath-backend/internal/app"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

func main() {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(log); err != nil {
		log.Error("Server failed", "error", err)
		log.Sync()
		os.Exit(1)
	}
	log.Info("Server stopped")
	log.Sync()
}

func run(log *logger.Logger) error {
	app.LoadDotEnv(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, log)
	if err != nil {
		return fmt.Errorf("startup: %w", err)
	}
	defer a.Close()

	return a.Run(ctx)
}
