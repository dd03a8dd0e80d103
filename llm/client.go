// Package llm speaks the OpenAI-compatible chat-completion protocol over HTTP.
// It is the only package that knows the wire format of the backing endpoint.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"dialogue-lab/domain"
)

const completionsPath = "/v1/chat/completions"

type completionRequest struct {
	Model       string               `json:"model"`
	Messages    []domain.ChatMessage `json:"messages"`
	Temperature float64              `json:"temperature"`
	MaxTokens   int                  `json:"max_tokens"`
	Stream      bool                 `json:"stream"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client holds the endpoint base URL and opens transport sessions against it.
type Client struct {
	baseURL string
}

func NewClient(baseURL string) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/")}
}

// NewSession opens an independent connection scope. The caller owns the
// session and must Close it to release idle connections.
func (c *Client) NewSession() domain.Session {
	return &Session{baseURL: c.baseURL, http: &http.Client{}}
}

// Session reuses one HTTP connection pool across all calls made through it.
type Session struct {
	baseURL string
	http    *http.Client
}

// Complete submits one non-streaming chat completion and returns the first
// choice's message content. A non-200 status or a body missing that field
// is an error; the caller decides what failure means.
func (s *Session) Complete(ctx context.Context, model string, messages []domain.ChatMessage,
	temperature float64, maxTokens int) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Stream:      false,
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+completionsPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	var completion completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("response contains no choices")
	}
	return completion.Choices[0].Message.Content, nil
}

func (s *Session) Close() {
	s.http.CloseIdleConnections()
}
