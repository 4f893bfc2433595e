package dto

import "quiz-ia/internal/domain"

// GenerateQuizRequest represents the body of POST /generate-quiz
// @Description Request body for quiz generation
type GenerateQuizRequest struct {
	Topic string `json:"topic" example:"CSS"`
}

// GenerateQuizResponse represents a generated quiz in the API response
// @Description Five multiple-choice questions
type GenerateQuizResponse struct {
	Questions []domain.Question `json:"questions"`
}

// ErrorResponse represents an error in the API response
// @Description Error payload; clients display the error field
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
