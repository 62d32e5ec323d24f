package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/valter-silva-au/onboard/pkg/models"
)

func postGenerate(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleGenerate(t *testing.T) {
	handler := NewServer(t.TempDir(), 0).Handler()

	rec := postGenerate(t, handler, `{"owner": "microsoft", "repo": "vscode", "team": "platform", "name": "Dana"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var result models.PipelineRunResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if len(result.Steps) != 4 {
		t.Errorf("expected 4 steps, got %d", len(result.Steps))
	}
	if len(result.Errors) != 0 {
		t.Errorf("expected no errors, got %v", result.Errors)
	}
	if result.Guide == nil {
		t.Fatal("expected a guide in the response")
	}
	if !strings.Contains(result.Guide.Content, "# Welcome to the Team") {
		t.Error("guide content missing")
	}
	if !strings.Contains(result.Guide.OutputPath, "onboarding-microsoft-vscode-") {
		t.Errorf("unexpected output path %q", result.Guide.OutputPath)
	}
}

func TestHandleGenerateDefaults(t *testing.T) {
	handler := NewServer(t.TempDir(), 0).Handler()

	rec := postGenerate(t, handler, `{"owner": "acme", "repo": "widgets"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var result models.PipelineRunResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if result.Analysis.RepoFullName != "acme/widgets" {
		t.Errorf("RepoFullName = %q", result.Analysis.RepoFullName)
	}
}

func TestHandleGenerateValidation(t *testing.T) {
	handler := NewServer(t.TempDir(), 0).Handler()

	tests := []struct {
		name string
		body string
	}{
		{name: "missing owner", body: `{"repo": "widgets"}`},
		{name: "missing repo", body: `{"owner": "acme"}`},
		{name: "invalid json", body: `{broken`},
		{name: "empty body", body: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postGenerate(t, handler, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("error body not JSON: %v", err)
			}
			if body["error"] == "" {
				t.Error("expected an error message")
			}
		})
	}
}

func TestGenerateRejectsGet(t *testing.T) {
	handler := NewServer(t.TempDir(), 0).Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/generate", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code == http.StatusOK {
		t.Errorf("GET /api/generate should not succeed, got %d", rec.Code)
	}
}

func TestStaticFilesServed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>onboard</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}

	handler := NewServer(dir, 0).Handler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "onboard") {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}
