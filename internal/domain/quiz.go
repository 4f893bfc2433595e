package domain

import (
	"fmt"
	"strings"
)

const (
	// QuizSize is the number of questions in every generated quiz.
	QuizSize = 5
	// OptionCount is the number of answer options per question.
	OptionCount = 4
)

// ValidationError represents a validation error
type ValidationError struct {
	message string
}

func (e *ValidationError) Error() string {
	return e.message
}

func NewValidationError(message string) error {
	return &ValidationError{message: message}
}

// Question is a single multiple-choice question
// @Description Multiple-choice question with four options
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// Validate validates the question
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return NewValidationError("question text is required")
	}
	if len(q.Options) != OptionCount {
		return NewValidationError(fmt.Sprintf("question must have exactly %d options, got %d", OptionCount, len(q.Options)))
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return NewValidationError(fmt.Sprintf("option %d is empty", i))
		}
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return NewValidationError(fmt.Sprintf("correctAnswer %d is out of range [0,%d]", q.CorrectAnswer, len(q.Options)-1))
	}
	return nil
}

// IsCorrect reports whether the option at index is the right answer.
func (q *Question) IsCorrect(index int) bool {
	return index == q.CorrectAnswer
}

// QuizSet is the ordered list of questions produced by one generation request
// @Description Generated quiz
type QuizSet struct {
	Questions []Question `json:"questions"`
}

// Len returns the number of questions.
func (s *QuizSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Questions)
}

// Validate validates the quiz set and every question in it
func (s *QuizSet) Validate() error {
	if s == nil || s.Questions == nil {
		return NewValidationError("questions are required")
	}
	if len(s.Questions) != QuizSize {
		return NewValidationError(fmt.Sprintf("quiz must have exactly %d questions, got %d", QuizSize, len(s.Questions)))
	}
	for i := range s.Questions {
		if err := s.Questions[i].Validate(); err != nil {
			return NewValidationError(fmt.Sprintf("question %d: %v", i+1, err))
		}
	}
	return nil
}
