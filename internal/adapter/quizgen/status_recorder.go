package quizgen

import (
	"context"
	"net/http"
	"sync/atomic"
)

// responseStatus holds the HTTP status of the last gateway response seen for one call.
type responseStatus struct {
	code atomic.Int64
}

func (s *responseStatus) get() int {
	return int(s.code.Load())
}

type responseStatusKey struct{}

func withResponseStatus(ctx context.Context, s *responseStatus) context.Context {
	return context.WithValue(ctx, responseStatusKey{}, s)
}

// statusRecorder is handed to langchaingo as its HTTP doer. The client folds non-2xx
// replies into a plain error, so the status is captured here through the request context.
type statusRecorder struct {
	client *http.Client
}

func (r *statusRecorder) Do(req *http.Request) (*http.Response, error) {
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	if s, ok := req.Context().Value(responseStatusKey{}).(*responseStatus); ok {
		s.code.Store(int64(resp.StatusCode))
	}
	return resp, nil
}
