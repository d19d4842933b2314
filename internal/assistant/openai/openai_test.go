package openai_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/bible-study/internal/assistant"
	"github.com/sakif/bible-study/internal/assistant/openai"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestComplete(t *testing.T) {
	var got struct {
		Model       string              `json:"model"`
		Messages    []assistant.Message `json:"messages"`
		MaxTokens   int                 `json:"max_tokens"`
		Temperature float64             `json:"temperature"`
	}
	var authHeader, path string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&got)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"model":"gpt-test","choices":[{"message":{"role":"assistant","content":"God so loved the world."}}]}`)
	}))
	defer srv.Close()

	client := openai.New(openai.Config{
		APIKey:  "sk-test",
		BaseURL: srv.URL + "/",
		Model:   "gpt-test",
	}, testLogger())

	res, err := client.Complete(context.Background(), assistant.CompletionRequest{
		Messages: []assistant.Message{
			{Role: assistant.RoleSystem, Content: "be kind"},
			{Role: assistant.RoleUser, Content: "What is John 3:16?"},
		},
		MaxTokens:   500,
		Temperature: 0.7,
	})
	require.NoError(t, err)

	assert.Equal(t, "God so loved the world.", res.Content)
	assert.Equal(t, "gpt-test", res.Model)

	t.Run("request shape", func(t *testing.T) {
		assert.Equal(t, "Bearer sk-test", authHeader)
		assert.Equal(t, "/chat/completions", path)
		assert.Equal(t, "gpt-test", got.Model)
		assert.Equal(t, 500, got.MaxTokens)
		assert.InDelta(t, 0.7, got.Temperature, 1e-9)
		require.Len(t, got.Messages, 2)
		assert.Equal(t, assistant.RoleSystem, got.Messages[0].Role)
	})
}

func TestComplete_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{
			name:    "api error message",
			status:  http.StatusTooManyRequests,
			body:    `{"error":{"message":"You exceeded your current quota","type":"insufficient_quota"}}`,
			wantErr: "You exceeded your current quota",
		},
		{
			name:    "bare status",
			status:  http.StatusBadGateway,
			body:    `<html>bad gateway</html>`,
			wantErr: "unexpected status 502",
		},
		{
			name:    "no choices",
			status:  http.StatusOK,
			body:    `{"choices":[]}`,
			wantErr: "no choices",
		},
		{
			name:    "malformed body",
			status:  http.StatusOK,
			body:    `{"choices":`,
			wantErr: "decoding response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			client := openai.New(openai.Config{APIKey: "sk-test", BaseURL: srv.URL}, testLogger())
			_, err := client.Complete(context.Background(), assistant.CompletionRequest{})

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestComplete_NoAPIKey(t *testing.T) {
	client := openai.New(openai.Config{}, testLogger())

	_, err := client.Complete(context.Background(), assistant.CompletionRequest{})
	assert.ErrorIs(t, err, openai.ErrNoAPIKey)
}

func TestComplete_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := openai.New(openai.Config{APIKey: "sk-test", BaseURL: url, Timeout: 2 * time.Second}, testLogger())
	_, err := client.Complete(context.Background(), assistant.CompletionRequest{})
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := openai.DefaultConfig()
	assert.Equal(t, "https://api.openai.com/v1", cfg.BaseURL)
	assert.Equal(t, "gpt-3.5-turbo", cfg.Model)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
}
