package service

import (
	"context"
	"errors"

	"quiz-ia/internal/config"
	"quiz-ia/internal/domain"
	"quiz-ia/internal/logger"
	"quiz-ia/internal/validation"

	"go.uber.org/zap"
)

// QuizService defines the interface for quiz generation
type QuizService interface {
	GenerateQuiz(ctx context.Context, topic string) (*domain.QuizSet, error)
}

// quizService implements QuizService
type quizService struct {
	provider    domain.ModelProvider
	validator   *validation.Validator
	temperature float64
}

// NewQuizService creates a new instance of quizService.
// provider is nil when no API key is configured; every request then fails as misconfigured.
func NewQuizService(provider domain.ModelProvider, cfg *config.Config) QuizService {
	return &quizService{
		provider:    provider,
		validator:   validation.NewValidator(cfg.Quiz.MaxTopicLength),
		temperature: cfg.Provider.Temperature,
	}
}

// GenerateQuiz implements QuizService
func (s *quizService) GenerateQuiz(ctx context.Context, topic string) (*domain.QuizSet, error) {
	l := logger.Get()

	trimmed, err := s.validator.ValidateTopic(topic)
	if err != nil {
		return nil, err
	}

	if s.provider == nil {
		l.Error("Model provider API key is not configured")
		return nil, domain.NewServerMisconfiguredError(errors.New("provider API key is not configured"))
	}

	l.Info("Generating quiz", zap.String("topic", trimmed))

	raw, err := s.provider.Complete(ctx, domain.Prompt{
		System:      SystemPrompt(),
		User:        BuildUserPrompt(trimmed),
		Temperature: s.temperature,
	})
	if err != nil {
		return nil, domain.AsDomainError(err)
	}

	quiz, err := ParseQuizSet(raw)
	if err != nil {
		l.Error("Invalid quiz in model response", zap.Error(err), zap.String("raw_response", raw))
		return nil, err
	}

	l.Info("Quiz generated successfully", zap.String("topic", trimmed), zap.Int("questions", quiz.Len()))
	return quiz, nil
}
