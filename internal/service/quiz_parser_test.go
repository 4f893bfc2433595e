package service

import (
	"errors"
	"strings"
	"testing"

	"quiz-ia/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireCode(t *testing.T, err error, code domain.ErrorCode) {
	t.Helper()
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr), "expected *domain.DomainError, got %T: %v", err, err)
	assert.Equal(t, code, domainErr.Code)
}

func TestExtractJSONPayload(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bare json", `  {"questions": []}  `, `{"questions": []}`},
		{"json fence", "```json\n{\"questions\": []}\n```", `{"questions": []}`},
		{"plain fence", "```\n{\"questions\": []}\n```", `{"questions": []}`},
		{"fence with prose around", "Aquí está tu quiz:\n```json\n{\"a\": 1}\n```\n¡Suerte!", `{"a": 1}`},
		{"think block removed", "<think>razonando...</think>\n{\"a\": 1}", `{"a": 1}`},
		{"think block then fence", "<think>x</think>```json\n{\"a\": 1}```", `{"a": 1}`},
		{"unterminated think kept", "<think>x {\"a\": 1}", "<think>x {\"a\": 1}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSONPayload(tt.raw))
		})
	}
}

func TestParseQuizSet_FencedReplyReturnedUnmodified(t *testing.T) {
	want := sampleQuiz(domain.QuizSize)

	for _, raw := range []string{
		"```json\n" + sampleQuizJSON(domain.QuizSize) + "\n```",
		"```\n" + sampleQuizJSON(domain.QuizSize) + "\n```",
		sampleQuizJSON(domain.QuizSize),
		"Claro, aquí tienes: " + sampleQuizJSON(domain.QuizSize) + " Espero que te sirva.",
	} {
		got, err := ParseQuizSet(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}
}

func TestParseQuizSet_Malformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"   ",
		"no tengo preguntas para ti",
		"```json\n{\"questions\": [\n```",
		"{ esto no es json }",
	} {
		_, err := ParseQuizSet(raw)
		requireCode(t, err, domain.CodeMalformedResponse)
	}
}

func TestParseQuizSet_InvalidShape(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		msg  string
	}{
		{"four questions", sampleQuizJSON(4), "expected 5 questions, got 4"},
		{"six questions", sampleQuizJSON(6), "expected 5 questions, got 6"},
		{"missing questions", `{"quiz": []}`, "questions field is missing"},
		{"null questions", `{"questions": null}`, "questions field is missing"},
		{"questions not array", `{"questions": "cinco"}`, "questions is not an array"},
		{"top level array", `[1, 2, 3]`, "not a JSON object"},
		{"correct answer out of range", strings.Replace(sampleQuizJSON(5), `"correctAnswer":0`, `"correctAnswer":9`, 1), "out of range"},
		{"correct answer as string", strings.Replace(sampleQuizJSON(5), `"correctAnswer":0`, `"correctAnswer":"0"`, 1), "unexpected field types"},
		{"missing correct answer", strings.Replace(sampleQuizJSON(5), `,"correctAnswer":0`, ``, 1), "missing question or correctAnswer"},
		{"three options", strings.Replace(sampleQuizJSON(5), `["a","b","c","d"]`, `["a","b","c"]`, 1), "exactly 4 options"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuizSet(tt.raw)
			requireCode(t, err, domain.CodeInvalidQuizShape)
			assert.Contains(t, err.Error(), tt.msg)
			assert.Equal(t, 500, domain.StatusForCode(domain.CodeInvalidQuizShape))
		})
	}
}
