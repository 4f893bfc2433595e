package server_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"quiz-ia/internal/config"
	"quiz-ia/internal/domain"
	"quiz-ia/internal/dto"
	"quiz-ia/internal/handler"
	"quiz-ia/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	quiz  *domain.QuizSet
	err   error
	panic bool
}

func (s *stubService) GenerateQuiz(ctx context.Context, topic string) (*domain.QuizSet, error) {
	if s.panic {
		panic("unexpected")
	}
	return s.quiz, s.err
}

func validQuiz() *domain.QuizSet {
	questions := make([]domain.Question, domain.QuizSize)
	for i := range questions {
		questions[i] = domain.Question{Question: "¿?", Options: []string{"1", "2", "3", "4"}, CorrectAnswer: 1}
	}
	return &domain.QuizSet{Questions: questions}
}

func newTestApp(svc *stubService) *fiber.App {
	cfg := &config.Config{}
	return server.NewApp(cfg, handler.NewQuizHandler(svc))
}

func TestNewApp_Preflight(t *testing.T) {
	app := newTestApp(&stubService{})

	req := httptest.NewRequest("OPTIONS", "/api/generate-quiz", nil)
	req.Header.Set("Origin", "https://quiz.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "content-type, apikey")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST,OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, []string{"authorization", "x-client-info", "apikey", "content-type"},
		headerList(resp.Header.Get("Access-Control-Allow-Headers")))
}

// headerList splits a comma-separated header value, ignoring spacing.
func headerList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func TestNewApp_PreflightWithoutOrigin(t *testing.T) {
	app := newTestApp(&stubService{})

	resp, err := app.Test(httptest.NewRequest("OPTIONS", "/api/generate-quiz", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, []string{"authorization", "x-client-info", "apikey", "content-type"},
		headerList(resp.Header.Get("Access-Control-Allow-Headers")))
}

func TestNewApp_GenerateQuiz(t *testing.T) {
	app := newTestApp(&stubService{quiz: validQuiz()})

	req := httptest.NewRequest("POST", "/api/generate-quiz", strings.NewReader(`{"topic":"CSS"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://quiz.example.com")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	_, err = ulid.ParseStrict(resp.Header.Get(fiber.HeaderXRequestID))
	assert.NoError(t, err, "request id should be a ULID")

	var body dto.GenerateQuizResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Questions, domain.QuizSize)
}

func TestNewApp_ErrorResponsesCarryCORS(t *testing.T) {
	tests := []struct {
		name       string
		svc        *stubService
		wantStatus int
		wantMsg    string
	}{
		{"rate limited", &stubService{err: domain.NewRateLimitedError(nil)}, 429, domain.MsgRateLimited},
		{"payment required", &stubService{err: domain.NewPaymentRequiredError(nil)}, 402, domain.MsgPaymentRequired},
		{"misconfigured", &stubService{err: domain.NewServerMisconfiguredError(nil)}, 500, domain.MsgServerMisconfigured},
		{"panic recovered", &stubService{panic: true}, 500, domain.MsgUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(tt.svc)
			req := httptest.NewRequest("POST", "/api/generate-quiz", strings.NewReader(`{"topic":"CSS"}`))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Origin", "https://quiz.example.com")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantMsg, body.Error)
		})
	}
}

func TestNewApp_UnknownRoute(t *testing.T) {
	app := newTestApp(&stubService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/nope", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
