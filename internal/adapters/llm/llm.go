// Package llm provides a chat-completions client for the assistant pipeline
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	perr "whosin/internal/platform/errors"
	"whosin/internal/platform/logger"
)

const (
	defaultBaseURL     = "https://api.openai.com"
	defaultModel       = "gpt-4o-mini"
	defaultTimeout     = 15 * time.Second
	defaultMaxTokens   = 512
	defaultTemperature = 0.0
	completionsPath    = "/v1/chat/completions"
)

// Message is one turn of a chat conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options configures the Client
type Options struct {
	BaseURL string
	APIKey  string
	Model   string

	// Timeout bounds a single completion call end to end
	// per-call CompleteOpts.Timeout may shorten but never extend it
	Timeout time.Duration
}

// CompleteOpts tunes a single completion call
type CompleteOpts struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration

	// JSONMode asks the model for a strict JSON object response
	JSONMode bool
}

// Client talks to an OpenAI compatible chat completions endpoint
// one attempt per call; callers own fallback behavior when the model is down
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time
}

// NewClient creates a Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = defaultBaseURL
	}
	if o.Model == "" {
		o.Model = defaultModel
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("llm"),
		now:  time.Now,
	}
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete sends messages and returns the first choice's text
func (c *Client) Complete(ctx context.Context, messages []Message, opts CompleteOpts) (string, error) {
	if len(messages) == 0 {
		return "", perr.InvalidArgf("llm complete requires at least one message")
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = defaultMaxTokens
	}
	if opts.Temperature < 0 {
		opts.Temperature = defaultTemperature
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	body := chatRequest{
		Model:       c.opts.Model,
		Messages:    messages,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	}
	if opts.JSONMode {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeJSON, "llm marshal request failed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+completionsPath, bytes.NewReader(raw))
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnknown, "llm new request failed")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.opts.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	}

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnavailable, "llm request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Str("model", c.opts.Model).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Bool("json_mode", opts.JSONMode).
		Msg("llm http response")

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return "", perr.Newf(perr.ErrorCodeTooManyRequests, "llm rate limited")
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", perr.Unauthorizedf("llm auth rejected")
	default:
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", perr.Newf(perr.ErrorCodeUnavailable, "llm unexpected status %d body %s", resp.StatusCode, string(tail))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeJSON, "llm decode response failed")
	}
	if out.Error != nil {
		return "", perr.Newf(perr.ErrorCodeUnavailable, "llm api error %s %s", out.Error.Type, out.Error.Message)
	}
	if len(out.Choices) == 0 {
		return "", perr.Newf(perr.ErrorCodeUnavailable, "llm returned no choices")
	}
	text := strings.TrimSpace(out.Choices[0].Message.Content)
	if text == "" {
		return "", perr.Newf(perr.ErrorCodeUnavailable, "llm returned empty content")
	}
	return text, nil
}
