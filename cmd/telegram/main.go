package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"quiz-ia/internal/client"
	"quiz-ia/internal/config"
	"quiz-ia/internal/logger"
	"quiz-ia/internal/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	api, err := telegram.NewBotAPI(cfg.Telegram)
	if err != nil {
		appLogger.Fatal("Failed to create Telegram bot", zap.Error(err))
	}
	appLogger.Info("Authorized on account", zap.String("username", api.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		appLogger.Info("Shutting down bot...")
		api.StopReceivingUpdates()
	}()

	bot := telegram.New(api, client.NewQuizClient(cfg.Client))
	bot.Start(ctx, updates)
	appLogger.Info("Bot exited gracefully")
}
