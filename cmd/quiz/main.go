package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"quiz-ia/internal/cli"
	"quiz-ia/internal/client"
	"quiz-ia/internal/config"
	"quiz-ia/internal/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// The terminal owns stdout; logs go to stderr and stay quiet unless something is wrong.
	cfg.Logger.Output = "stderr"
	cfg.Logger.Level = "warn"
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := cli.New(client.NewQuizClient(cfg.Client), os.Stdin, os.Stdout)
	if err := app.Run(ctx); err != nil {
		logger.Get().Error("Quiz session ended with error", zap.Error(err))
		os.Exit(1)
	}
}
