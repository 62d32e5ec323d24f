package integration

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/valter-silva-au/onboard/pkg/models"
)

func TestNewHTTPSessionBackendUnavailable(t *testing.T) {
	tests := []struct {
		name string
		cfg  models.SessionConfig
		env  map[string]string
	}{
		{
			name: "no base url",
			cfg:  models.SessionConfig{Model: "gpt-4o"},
		},
		{
			name: "api key env var not set",
			cfg: models.SessionConfig{
				Model:     "gpt-4o",
				BaseURL:   "https://api.example.com/v1",
				APIKeyEnv: "ONBOARD_TEST_MISSING_KEY",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := NewHTTPSession(tt.cfg)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, ErrBackendUnavailable) {
				t.Errorf("error %v should wrap ErrBackendUnavailable", err)
			}
		})
	}
}

func TestNewHTTPSessionNoAPIKeyRequired(t *testing.T) {
	// Local backends like Ollama need no key at all.
	session, err := NewHTTPSession(models.SessionConfig{
		Model:   "llama3",
		BaseURL: "http://localhost:11434/v1",
	})
	if err != nil {
		t.Fatalf("NewHTTPSession failed: %v", err)
	}
	if session.apiKey != "" {
		t.Errorf("expected empty api key, got %q", session.apiKey)
	}
}

func TestHTTPSessionEndpointURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
	}{
		{
			name:    "plain base",
			baseURL: "https://api.example.com/v1",
			want:    "https://api.example.com/v1/chat/completions",
		},
		{
			name:    "trailing slash",
			baseURL: "https://api.example.com/v1/",
			want:    "https://api.example.com/v1/chat/completions",
		},
		{
			name:    "full path already present",
			baseURL: "https://api.example.com/v1/chat/completions",
			want:    "https://api.example.com/v1/chat/completions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &HTTPSession{baseURL: tt.baseURL}
			if got := s.endpointURL(); got != tt.want {
				t.Errorf("endpointURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHTTPSessionSendAndWait(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "[\"go.mod\"]"}, "finish_reason": "stop"}]}`))
	}))
	defer srv.Close()

	t.Setenv("ONBOARD_TEST_API_KEY", "secret-token")
	session, err := NewHTTPSession(models.SessionConfig{
		Model:     "gpt-4o",
		BaseURL:   srv.URL,
		APIKeyEnv: "ONBOARD_TEST_API_KEY",
	})
	if err != nil {
		t.Fatalf("NewHTTPSession failed: %v", err)
	}

	reply, err := session.SendAndWait(context.Background(), "List the repository file structure of acme/widgets.")
	if err != nil {
		t.Fatalf("SendAndWait failed: %v", err)
	}
	if reply != `["go.mod"]` {
		t.Errorf("reply = %q", reply)
	}

	if gotAuth != "Bearer secret-token" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReq.Model != "gpt-4o" {
		t.Errorf("request model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != "user" {
		t.Errorf("unexpected messages: %+v", gotReq.Messages)
	}
	if !strings.Contains(gotReq.Messages[0].Content, "acme/widgets") {
		t.Errorf("prompt not forwarded: %q", gotReq.Messages[0].Content)
	}
}

func TestHTTPSessionSendAndWaitErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantIn  string
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error": "model overloaded"}`, http.StatusServiceUnavailable)
			},
			wantIn: "status 503",
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
			wantIn: "parsing chat response",
		},
		{
			name: "no choices",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"choices": []}`))
			},
			wantIn: "no choices",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			session, err := NewHTTPSession(models.SessionConfig{Model: "gpt-4o", BaseURL: srv.URL})
			if err != nil {
				t.Fatalf("NewHTTPSession failed: %v", err)
			}

			_, err = session.SendAndWait(context.Background(), "prompt")
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantIn) {
				t.Errorf("error %q does not contain %q", err, tt.wantIn)
			}
		})
	}
}
