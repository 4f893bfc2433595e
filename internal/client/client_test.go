package client_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quiz-ia/internal/client"
	"quiz-ia/internal/config"
	"quiz-ia/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quizJSON = `{"questions":[
 {"question":"q1","options":["a","b","c","d"],"correctAnswer":0},
 {"question":"q2","options":["a","b","c","d"],"correctAnswer":1},
 {"question":"q3","options":["a","b","c","d"],"correctAnswer":2},
 {"question":"q4","options":["a","b","c","d"],"correctAnswer":3},
 {"question":"q5","options":["a","b","c","d"],"correctAnswer":0}]}`

func newServer(t *testing.T, status int, body string, inspect func(r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if inspect != nil {
			inspect(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGenerate_Success(t *testing.T) {
	srv := newServer(t, http.StatusOK, quizJSON, func(r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate-quiz", r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "CSS", body["topic"])
	})

	c := client.NewQuizClient(config.ClientConfig{BaseURL: srv.URL + "/api/", APIKey: "anon-key", Timeout: 5 * time.Second})
	quiz, err := c.Generate(context.Background(), "CSS")
	require.NoError(t, err)
	assert.Equal(t, domain.QuizSize, quiz.Len())
	assert.Equal(t, 3, quiz.Questions[3].CorrectAnswer)
}

func TestGenerate_NoAPIKeyHeaders(t *testing.T) {
	srv := newServer(t, http.StatusOK, quizJSON, func(r *http.Request) {
		assert.Empty(t, r.Header.Get("apikey"))
		assert.Empty(t, r.Header.Get("Authorization"))
	})

	_, err := client.NewQuizClient(config.ClientConfig{BaseURL: srv.URL + "/api"}).Generate(context.Background(), "Go")
	require.NoError(t, err)
}

func TestGenerate_ErrorReplies(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode domain.ErrorCode
		wantMsg  string
	}{
		{"rate limited", 429, `{"error":"Límite de solicitudes alcanzado. Por favor, intenta más tarde."}`, domain.CodeRateLimited, domain.MsgRateLimited},
		{"payment", 402, `{"error":"Se requiere pago."}`, domain.CodePaymentRequired, "Se requiere pago."},
		{"bad input", 400, `{"error":"El tema es requerido","code":"INVALID_INPUT"}`, domain.CodeInvalidInput, domain.MsgTopicRequired},
		{"server error", 500, `{"error":"Error al generar el quiz"}`, domain.CodeUnknown, domain.MsgProviderError},
		{"non-json error", 502, `Bad Gateway`, domain.CodeUnknown, ""},
		{"ok without questions", 200, `{}`, domain.CodeUnknown, domain.MsgNoQuestions},
		{"ok with garbage", 200, `<html>`, domain.CodeUnknown, domain.MsgNoQuestions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, tt.status, tt.body, nil)
			_, err := client.NewQuizClient(config.ClientConfig{BaseURL: srv.URL}).Generate(context.Background(), "CSS")
			require.Error(t, err)

			domainErr := domain.AsDomainError(err)
			assert.Equal(t, tt.wantCode, domainErr.Code)
			assert.Equal(t, tt.wantMsg, domainErr.Message)
		})
	}
}

func TestGenerate_TransportFailureUsesFallback(t *testing.T) {
	srv := newServer(t, http.StatusOK, quizJSON, nil)
	url := srv.URL
	srv.Close()

	_, err := client.NewQuizClient(config.ClientConfig{BaseURL: url, Timeout: time.Second}).Generate(context.Background(), "CSS")
	require.Error(t, err)
	assert.Equal(t, domain.MsgGenerateFallback, domain.UserMessage(err, domain.MsgGenerateFallback))
}

func TestGenerate_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.NewQuizClient(config.ClientConfig{BaseURL: "http://127.0.0.1:1"}).Generate(ctx, "CSS")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
