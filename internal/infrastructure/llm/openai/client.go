// Package openai implements the chat-completion client the fallback
// resolver delegates to. Any OpenAI-compatible endpoint works; only the
// base URL, key, and model name differ.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/voracio/sheetsense/internal/infrastructure/monitoring/logging"
	"github.com/voracio/sheetsense/pkg/errors"
)

// Config holds the LLM collaborator connection parameters. The API key is
// always supplied by configuration or environment, never embedded in code.
type Config struct {
	BaseURL   string
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

const (
	defaultBaseURL   = "https://api.openai.com"
	defaultModel     = "gpt-4o-mini"
	defaultMaxTokens = 100
	defaultTimeout   = 30 * time.Second
)

// Client issues chat-completion requests over HTTP. It is safe for
// concurrent use.
type Client struct {
	cfg    Config
	http   *http.Client
	logger logging.Logger
}

// NewClient constructs a Client, applying defaults for unset fields.
func NewClient(cfg Config, logger logging.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger.Named("openai"),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete sends one system+user message pair and returns the trimmed
// response text. Failures carry typed codes so the fallback resolver can
// decide what is retryable: CodeLLMUnauthorized is terminal,
// CodeLLMTimeout and CodeFallbackError may be retried once.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens: c.cfg.MaxTokens,
	})
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInternal, "marshaling chat request")
	}

	url := c.cfg.BaseURL + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInternal, "creating chat request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", errors.Wrap(err, errors.CodeLLMTimeout, "chat completion cancelled")
		}
		return "", errors.Wrap(err, errors.CodeFallbackError, "calling chat completion endpoint")
	}
	defer resp.Body.Close()

	c.logger.Debug("chat completion finished",
		logging.Int("status", resp.StatusCode),
		logging.Duration("took", time.Since(start)))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", errors.Wrap(err, errors.CodeFallbackError, "reading chat response")
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", errors.Newf(errors.CodeLLMUnauthorized, "endpoint rejected credentials (status %d)", resp.StatusCode)
	case resp.StatusCode == http.StatusRequestTimeout || resp.StatusCode == http.StatusGatewayTimeout:
		return "", errors.Newf(errors.CodeLLMTimeout, "endpoint timed out (status %d)", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return "", errors.Newf(errors.CodeFallbackError, "endpoint returned status %d: %s", resp.StatusCode, summarize(raw))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", errors.Wrap(err, errors.CodeLLMBadResponse, "decoding chat response")
	}
	if parsed.Error != nil {
		return "", errors.Newf(errors.CodeFallbackError, "endpoint error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New(errors.CodeLLMBadResponse, "chat response contains no choices")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// summarize truncates an error body for inclusion in messages.
func summarize(raw []byte) string {
	const max = 200
	s := strings.TrimSpace(string(raw))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

// String implements fmt.Stringer without leaking the API key.
func (c Config) String() string {
	key := "unset"
	if c.APIKey != "" {
		key = "set"
	}
	return fmt.Sprintf("openai.Config{BaseURL:%s Model:%s APIKey:%s}", c.BaseURL, c.Model, key)
}
