package validation

import (
	"strings"
	"unicode/utf8"

	"quiz-ia/internal/domain"
)

// Validator provides request validation functionality
type Validator struct {
	maxTopicLength int
}

// NewValidator creates a new validator instance
func NewValidator(maxTopicLength int) *Validator {
	return &Validator{maxTopicLength: maxTopicLength}
}

// ValidateTopic checks the quiz topic and returns it trimmed.
func (v *Validator) ValidateTopic(topic string) (string, error) {
	trimmed := strings.TrimSpace(topic)
	if trimmed == "" {
		return "", domain.NewInvalidInputError(domain.MsgTopicRequired)
	}
	if v.maxTopicLength > 0 && utf8.RuneCountInString(trimmed) > v.maxTopicLength {
		return "", domain.NewInvalidInputError(domain.MsgTopicTooLong)
	}
	return trimmed, nil
}
