package service

import (
	"context"

	"quiz-ia/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockModelProvider ---
type MockModelProvider struct {
	mock.Mock
}

func (m *MockModelProvider) Complete(ctx context.Context, prompt domain.Prompt) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
