package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"quiz-ia/internal/config"
	"quiz-ia/internal/domain"
	"quiz-ia/internal/dto"
	"quiz-ia/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const generatePath = "/generate-quiz"

// QuizClient calls the generation service over HTTP.
type QuizClient struct {
	baseURL string
	apiKey  string
	timeout time.Duration
}

// NewQuizClient creates a client for the service rooted at cfg.BaseURL (e.g. http://host/api).
func NewQuizClient(cfg config.ClientConfig) *QuizClient {
	return &QuizClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		timeout: cfg.Timeout,
	}
}

type generateReply struct {
	Questions *[]domain.Question `json:"questions"`
	Error     string             `json:"error"`
}

// Generate implements session.Generator.
func (c *QuizClient) Generate(ctx context.Context, topic string) (*domain.QuizSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewError(domain.CodeUnknown, "", err)
	}

	agent := fiber.Post(c.baseURL + generatePath)
	agent.JSON(dto.GenerateQuizRequest{Topic: topic})
	if c.apiKey != "" {
		agent.Set("apikey", c.apiKey)
		agent.Set(fiber.HeaderAuthorization, "Bearer "+c.apiKey)
	}
	if c.timeout > 0 {
		agent.Timeout(c.timeout)
	}

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		err := errors.Join(errs...)
		logger.Get().Error("Generation service unreachable", zap.String("url", c.baseURL+generatePath), zap.Error(err))
		// No message: callers fall back to their generic text.
		return nil, domain.NewError(domain.CodeUnknown, "", err)
	}

	var reply generateReply
	decodeErr := json.Unmarshal(body, &reply)

	if status != fiber.StatusOK {
		logger.Get().Warn("Generation service returned an error",
			zap.Int("status", status),
			zap.String("error", reply.Error),
		)
		return nil, domain.NewError(domain.CodeForStatus(status), reply.Error,
			fmt.Errorf("generation service returned status %d", status))
	}

	if decodeErr != nil || reply.Questions == nil {
		return nil, domain.NewError(domain.CodeUnknown, domain.MsgNoQuestions, decodeErr)
	}

	return &domain.QuizSet{Questions: *reply.Questions}, nil
}
