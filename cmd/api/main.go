// @title Quiz IA API
// @version 1.0
// @description Generates five-question multiple-choice quizzes about any topic using a language model.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "quiz-ia/cmd/api/docs"
	"quiz-ia/internal/adapter/quizgen"
	"quiz-ia/internal/config"
	"quiz-ia/internal/domain"
	"quiz-ia/internal/handler"
	"quiz-ia/internal/logger"
	"quiz-ia/internal/server"
	"quiz-ia/internal/service"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	quizService := service.NewQuizService(newProvider(cfg, appLogger), cfg)
	quizHandler := handler.NewQuizHandler(quizService)
	app := server.NewApp(cfg, quizHandler)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}

// newProvider returns nil when no credential is configured so requests fail as misconfigured
// instead of the process refusing to start.
func newProvider(cfg *config.Config, appLogger *zap.Logger) domain.ModelProvider {
	if !cfg.HasProviderCredential() {
		appLogger.Warn("Provider API key is not configured; quiz generation will fail until it is set")
		return nil
	}

	provider, err := quizgen.NewGatewayProvider(cfg.Provider, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create model provider", zap.Error(err))
	}
	appLogger.Info("Model provider initialized",
		zap.String("base_url", cfg.Provider.BaseURL),
		zap.String("model", cfg.Provider.Model),
	)
	return provider
}
