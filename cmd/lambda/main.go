package main

import (
	"context"
	"log"

	_ "quiz-ia/cmd/api/docs"
	"quiz-ia/internal/adapter/quizgen"
	"quiz-ia/internal/config"
	"quiz-ia/internal/domain"
	"quiz-ia/internal/handler"
	"quiz-ia/internal/logger"
	"quiz-ia/internal/server"
	"quiz-ia/internal/service"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	fiberadapter "github.com/awslabs/aws-lambda-go-api-proxy/fiber"
	"go.uber.org/zap"
)

var fiberLambda *fiberadapter.FiberLambda

func init() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()

	var provider domain.ModelProvider
	if cfg.HasProviderCredential() {
		gateway, err := quizgen.NewGatewayProvider(cfg.Provider, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to create model provider", zap.Error(err))
		}
		provider = gateway
	} else {
		appLogger.Warn("Provider API key is not configured; quiz generation will fail until it is set")
	}

	app := server.NewApp(cfg, handler.NewQuizHandler(service.NewQuizService(provider, cfg)))
	fiberLambda = fiberadapter.New(app)
	appLogger.Info("Lambda handler initialized")
}

// Handler proxies API Gateway events into the fiber app.
func Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return fiberLambda.ProxyWithContext(ctx, req)
}

func main() {
	defer logger.Sync()
	lambda.Start(Handler)
}
