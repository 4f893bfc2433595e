package quizgen

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"quiz-ia/internal/config"
	"quiz-ia/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// GatewayProvider implements domain.ModelProvider against an OpenAI-compatible
// chat-completion gateway.
type GatewayProvider struct {
	llm    *openai.LLM
	model  string
	logger *zap.Logger
}

// NewGatewayProvider creates a provider for the configured gateway. The API key is required.
func NewGatewayProvider(cfg config.ProviderConfig, logger *zap.Logger) (*GatewayProvider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("provider API key cannot be empty")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("provider model name cannot be empty")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("provider base URL cannot be empty")
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	llm, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
		openai.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")),
		openai.WithHTTPClient(&statusRecorder{client: httpClient}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LangchainGo OpenAI client: %w", err)
	}

	logger.Info("Initializing GatewayProvider", zap.String("base_url", cfg.BaseURL), zap.String("model", cfg.Model))
	return &GatewayProvider{
		llm:    llm,
		model:  cfg.Model,
		logger: logger,
	}, nil
}

// Complete sends the system and user instructions and returns the first choice's content.
func (p *GatewayProvider) Complete(ctx context.Context, prompt domain.Prompt) (string, error) {
	status := &responseStatus{}
	ctx = withResponseStatus(ctx, status)

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, prompt.System),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt.User),
	}

	resp, err := p.llm.GenerateContent(ctx, messages, llms.WithTemperature(prompt.Temperature))
	if err != nil {
		code := status.get()
		p.logger.Error("Model provider call failed",
			zap.String("model", p.model),
			zap.Int("status", code),
			zap.Error(err))
		return "", mapProviderError(code, err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		p.logger.Error("No content found in model response", zap.String("model", p.model))
		return "", domain.NewMalformedResponseError(errors.New("no content in model response"))
	}

	content := resp.Choices[0].Content
	p.logger.Debug("Raw model response received", zap.String("raw_response", content))
	return content, nil
}

// mapProviderError classifies a failed call by the gateway's HTTP status.
// A 2xx status with an error means the reply itself could not be read.
func mapProviderError(status int, err error) *domain.DomainError {
	switch {
	case status == http.StatusTooManyRequests:
		return domain.NewRateLimitedError(err)
	case status == http.StatusPaymentRequired:
		return domain.NewPaymentRequiredError(err)
	case status >= 200 && status < 300:
		return domain.NewMalformedResponseError(err)
	default:
		return domain.NewProviderError(err)
	}
}

var _ domain.ModelProvider = (*GatewayProvider)(nil)
