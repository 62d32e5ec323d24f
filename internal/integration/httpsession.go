package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/valter-silva-au/onboard/pkg/models"
)

// maxResponseSize limits the chat response body to prevent memory exhaustion.
const maxResponseSize = 10 * 1024 * 1024 // 10MB

// HTTPSession is a ChatSession backed by an OpenAI-compatible
// chat-completions endpoint (OpenAI, OpenRouter, Ollama, vLLM).
type HTTPSession struct {
	baseURL string
	model   string
	apiKey  string
	client  *http.Client
}

// NewHTTPSession constructs the real chat session adapter. It returns an
// error wrapping ErrBackendUnavailable when the backend cannot be used at
// all (no endpoint configured, or the configured API key variable is empty),
// so callers can fall back to the demo session.
func NewHTTPSession(cfg models.SessionConfig) (*HTTPSession, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("no session base_url configured: %w", ErrBackendUnavailable)
	}

	apiKey := ""
	if cfg.APIKeyEnv != "" {
		apiKey = os.Getenv(cfg.APIKeyEnv)
		if apiKey == "" {
			return nil, fmt.Errorf("environment variable %s is not set: %w", cfg.APIKeyEnv, ErrBackendUnavailable)
		}
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	return &HTTPSession{
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// chatRequest is the OpenAI-compatible request format.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the OpenAI-compatible response format.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// endpointURL appends the chat-completions path unless the base URL already
// carries it.
func (s *HTTPSession) endpointURL() string {
	base := strings.TrimSuffix(s.baseURL, "/")
	if strings.HasSuffix(base, "/chat/completions") {
		return base
	}
	return base + "/chat/completions"
}

// SendAndWait sends one user prompt and returns the assistant's reply text.
func (s *HTTPSession) SendAndWait(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    s.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpointURL(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("reading chat response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		detail := string(respBody)
		if len(detail) > 200 {
			detail = detail[:200] + "..."
		}
		return "", fmt.Errorf("chat API error (status %d): %s", resp.StatusCode, detail)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("parsing chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat response contained no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
