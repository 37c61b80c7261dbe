package loki

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type MockLogger struct {
	mu     sync.Mutex
	errors []string
}

func (m *MockLogger) Error(msg string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, msg)
}

func Test_ConfigValidation(t *testing.T) {
	cfg := Config{}
	_, err := New(context.Background(), cfg, &MockLogger{})
	assert.Error(t, err)

	cfg.Url = "not a url"
	_, err = New(context.Background(), cfg, &MockLogger{})
	assert.Error(t, err)

	cfg.Url = "http://localhost:3100/loki/api/v1/push"
	pusher, err := New(context.Background(), cfg, &MockLogger{})
	require.NoError(t, err)
	defer pusher.Stop()

	assert.Equal(t, cfg.Url, pusher.config.Url)
	assert.Equal(t, 1000, pusher.config.BatchMaxSize)
	assert.Equal(t, 5*time.Second, pusher.config.BatchMaxWait)
	assert.Equal(t, map[string]string{}, pusher.config.Labels)
}

func Test_StopFlushesBatch(t *testing.T) {
	var (
		mu       sync.Mutex
		received []lokiPushRequest
		headers  []http.Header
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gz, err := gzip.NewReader(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		var req lokiPushRequest
		if err := json.NewDecoder(gz).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		mu.Lock()
		received = append(received, req)
		headers = append(headers, r.Header.Clone())
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	logger := &MockLogger{}
	pusher, err := New(context.Background(), Config{
		Url:          server.URL,
		BatchMaxWait: time.Hour,
		Labels:       map[string]string{"app": "intern-match"},
		TenantKey:    "X-Scope-OrgID",
		TenantValue:  "tenant",
		Username:     "user",
		Password:     "secret",
	}, logger)
	require.NoError(t, err)

	require.NoError(t, pusher.Push(LogEntry{Level: "error", Message: "first", Fields: map[string]string{"error_type": "db"}}))
	require.NoError(t, pusher.Push(LogEntry{Level: "info", Message: "second"}))
	pusher.Stop()
	pusher.Stop()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 1)
	require.Len(t, received[0].Streams, 1)
	assert.Equal(t, map[string]string{"app": "intern-match"}, received[0].Streams[0].Stream)
	require.Len(t, received[0].Streams[0].Values, 2)

	var first LogEntry
	require.NoError(t, json.Unmarshal([]byte(received[0].Streams[0].Values[0][1]), &first))
	assert.Equal(t, "first", first.Message)
	assert.Equal(t, "db", first.Fields["error_type"])

	assert.Equal(t, "tenant", headers[0].Get("X-Scope-OrgID"))
	assert.Equal(t, "gzip", headers[0].Get("Content-Encoding"))
	user, pass, ok := (&http.Request{Header: headers[0]}).BasicAuth()
	assert.True(t, ok)
	assert.Equal(t, "user", user)
	assert.Equal(t, "secret", pass)
	assert.Empty(t, logger.errors)
}

func Test_SendFailureIsReported(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	logger := &MockLogger{}
	pusher, err := New(context.Background(), Config{Url: server.URL, BatchMaxSize: 1, BatchMaxWait: time.Hour}, logger)
	require.NoError(t, err)

	require.NoError(t, pusher.Push(LogEntry{Level: "error", Message: "boom"}))
	pusher.Stop()

	logger.mu.Lock()
	defer logger.mu.Unlock()
	assert.Equal(t, []string{"failed to send logs"}, logger.errors)
}

func Test_PushAfterStopIsDiscarded(t *testing.T) {
	pusher, err := New(context.Background(), Config{Url: "http://localhost:3100/loki/api/v1/push"}, &MockLogger{})
	require.NoError(t, err)
	pusher.Stop()

	assert.NoError(t, pusher.Push(LogEntry{Level: "info", Message: "late"}))
}
