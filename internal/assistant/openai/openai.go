// Package openai is an assistant.Completer for OpenAI-compatible chat
// completion endpoints (POST {base_url}/chat/completions).
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/sakif/bible-study/internal/assistant"
)

// ErrNoAPIKey is returned by Complete when no API key is configured.
var ErrNoAPIKey = errors.New("openai: API key is not configured")

// maxErrorBody bounds how much of a failed response is read for the error.
const maxErrorBody = 4 << 10

type Client struct {
	http   *http.Client
	config Config
	logger *slog.Logger
}

var _ assistant.Completer = (*Client)(nil)

// New builds a client. The API key travels as a static OAuth2 bearer token,
// so the oauth2 transport sets the Authorization header on every request.
func New(cfg Config, logger *slog.Logger) *Client {
	defaults := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaults.Model
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: cfg.APIKey,
		TokenType:   "Bearer",
	})
	httpClient := oauth2.NewClient(context.Background(), src)
	httpClient.Timeout = cfg.Timeout

	return &Client{
		http:   httpClient,
		config: cfg,
		logger: logger,
	}
}

type chatRequest struct {
	Model       string              `json:"model"`
	Messages    []assistant.Message `json:"messages"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
	Temperature float64             `json:"temperature"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message assistant.Message `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (c *Client) Complete(ctx context.Context, req assistant.CompletionRequest) (*assistant.CompletionResult, error) {
	if c.config.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	start := time.Now()

	body, err := json.Marshal(chatRequest{
		Model:       c.config.Model,
		Messages:    req.Messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("openai: encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("openai: building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("openai: sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("openai: decoding response: %w", err)
	}
	if len(out.Choices) == 0 {
		return nil, errors.New("openai: response has no choices")
	}

	c.logger.Debug("completion finished",
		slog.String("model", out.Model),
		slog.Duration("duration", time.Since(start)),
	)

	return &assistant.CompletionResult{
		Content:  out.Choices[0].Message.Content,
		Model:    out.Model,
		Duration: time.Since(start),
	}, nil
}

// statusError turns a non-200 response into an error, preferring the API's
// own message when the body carries one.
func (c *Client) statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body chatResponse
	if json.Unmarshal(raw, &body) == nil && body.Error != nil && body.Error.Message != "" {
		return fmt.Errorf("openai: %s (status %d)", body.Error.Message, resp.StatusCode)
	}
	return fmt.Errorf("openai: unexpected status %d", resp.StatusCode)
}
