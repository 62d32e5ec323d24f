package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeMCPConfig(t *testing.T, dir string, servers map[string]MCPServerConfig) string {
	t.Helper()
	configPath := filepath.Join(dir, ".mcp.json")
	data, err := json.Marshal(map[string]any{"mcpServers": servers})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return configPath
}

func TestMCPClient_LoadServers(t *testing.T) {
	t.Run("loads configured servers", func(t *testing.T) {
		dir := t.TempDir()
		configPath := writeMCPConfig(t, dir, map[string]MCPServerConfig{
			"teams": {Type: "http", URL: "https://mcp.example.com/teams"},
			"docs":  {Type: "stdio", Command: "docs-mcp", Args: []string{"--serve"}},
		})

		client := NewMCPClient()
		servers, err := client.LoadServers(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(servers) != 2 {
			t.Fatalf("expected 2 servers, got %d", len(servers))
		}
		if servers["teams"].URL != "https://mcp.example.com/teams" {
			t.Errorf("unexpected teams config: %+v", servers["teams"])
		}
		if servers["docs"].Command != "docs-mcp" {
			t.Errorf("unexpected docs config: %+v", servers["docs"])
		}
	})

	t.Run("missing file yields empty map", func(t *testing.T) {
		client := NewMCPClient()
		servers, err := client.LoadServers(filepath.Join(t.TempDir(), ".mcp.json"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if servers == nil || len(servers) != 0 {
			t.Errorf("expected empty map, got %v", servers)
		}
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, ".mcp.json")
		if err := os.WriteFile(configPath, []byte("{not json"), 0o644); err != nil {
			t.Fatal(err)
		}

		client := NewMCPClient()
		if _, err := client.LoadServers(configPath); err == nil {
			t.Error("expected a parse error")
		}
	})
}

func TestApplySkips(t *testing.T) {
	servers := map[string]MCPServerConfig{
		"teams": {Type: "http", URL: "https://mcp.example.com/teams"},
		"docs":  {Type: "http", URL: "https://mcp.example.com/docs"},
		"other": {Type: "stdio", Command: "other-mcp"},
	}

	tests := []struct {
		name      string
		skipTeams bool
		skipDocs  bool
		wantNames []string
	}{
		{name: "no skips", wantNames: []string{"docs", "other", "teams"}},
		{name: "skip teams", skipTeams: true, wantNames: []string{"docs", "other"}},
		{name: "skip docs", skipDocs: true, wantNames: []string{"other", "teams"}},
		{name: "skip both", skipTeams: true, skipDocs: true, wantNames: []string{"other"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ApplySkips(servers, tt.skipTeams, tt.skipDocs)

			if len(out) != len(tt.wantNames) {
				t.Fatalf("got %d servers, want %d", len(out), len(tt.wantNames))
			}
			for _, want := range tt.wantNames {
				if _, ok := out[want]; !ok {
					t.Errorf("missing server %q", want)
				}
			}
		})
	}

	// The input map must not be modified.
	if len(servers) != 3 {
		t.Errorf("ApplySkips modified its input: %v", servers)
	}
}

func TestMCPClient_CheckServers(t *testing.T) {
	healthyServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer healthyServer.Close()

	unhealthyServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer unhealthyServer.Close()

	t.Run("checks HTTP servers", func(t *testing.T) {
		client := NewMCPClient()
		result := client.CheckServers(map[string]MCPServerConfig{
			"healthy":   {Type: "http", URL: healthyServer.URL},
			"unhealthy": {Type: "http", URL: unhealthyServer.URL},
		})

		if len(result.Servers) != 2 {
			t.Fatalf("expected 2 servers, got %d", len(result.Servers))
		}
		for _, s := range result.Servers {
			if s.Name == "healthy" && !s.Healthy {
				t.Error("expected healthy server to be healthy")
			}
			if s.Name == "unhealthy" && s.Healthy {
				t.Error("expected unhealthy server to be unhealthy")
			}
		}
	})

	t.Run("4xx still counts as reachable", func(t *testing.T) {
		notFoundServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer notFoundServer.Close()

		client := NewMCPClient()
		result := client.CheckServers(map[string]MCPServerConfig{
			"api": {Type: "http", URL: notFoundServer.URL},
		})
		if !result.Servers[0].Healthy {
			t.Error("a 404 response still proves the server is reachable")
		}
	})

	t.Run("checks stdio servers", func(t *testing.T) {
		origLookPath := lookPath
		lookPath = func(file string) (string, error) {
			if file == "existing-cmd" {
				return "/usr/bin/existing-cmd", nil
			}
			return "", fmt.Errorf("not found")
		}
		defer func() { lookPath = origLookPath }()

		client := NewMCPClient()
		result := client.CheckServers(map[string]MCPServerConfig{
			"found":   {Type: "stdio", Command: "existing-cmd"},
			"missing": {Type: "stdio", Command: "nonexistent-cmd"},
		})

		for _, s := range result.Servers {
			if s.Name == "found" && !s.Healthy {
				t.Error("expected found server to be healthy")
			}
			if s.Name == "missing" && s.Healthy {
				t.Error("expected missing server to be unhealthy")
			}
		}
	})

	t.Run("unknown type is unhealthy", func(t *testing.T) {
		client := NewMCPClient()
		result := client.CheckServers(map[string]MCPServerConfig{
			"weird": {Type: "grpc", URL: "grpc://example.com"},
		})
		if result.Servers[0].Healthy {
			t.Error("unknown server type must not be healthy")
		}
		if result.Servers[0].Error == "" {
			t.Error("expected an error message")
		}
	})
}

func TestMCPCheckResultCovers(t *testing.T) {
	result := &MCPCheckResult{
		Servers: []MCPServerStatus{
			{Name: "teams", Type: "http", Healthy: true},
		},
		CheckedAt: time.Now().UTC(),
	}

	tests := []struct {
		name    string
		servers map[string]MCPServerConfig
		want    bool
	}{
		{
			name:    "same server set",
			servers: map[string]MCPServerConfig{"teams": {Type: "http"}},
			want:    true,
		},
		{
			name: "server activated after the check",
			servers: map[string]MCPServerConfig{
				"teams": {Type: "http"},
				"docs":  {Type: "stdio", Command: "docs-mcp"},
			},
			want: false,
		},
		{
			name:    "narrower set after a skip flag",
			servers: map[string]MCPServerConfig{},
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := result.Covers(tt.servers); got != tt.want {
				t.Errorf("Covers(%v) = %v, want %v", tt.servers, got, tt.want)
			}
		})
	}
}

func TestMCPClient_Cache(t *testing.T) {
	t.Run("save and load round-trip", func(t *testing.T) {
		dir := t.TempDir()
		client := NewMCPClient()

		result := &MCPCheckResult{
			Servers:   []MCPServerStatus{{Name: "teams", Type: "http", Healthy: true}},
			CheckedAt: time.Now().UTC().Truncate(time.Second),
		}

		if err := client.SaveCache(dir, result, time.Minute); err != nil {
			t.Fatalf("SaveCache failed: %v", err)
		}

		loaded := client.LoadCache(dir)
		if loaded == nil {
			t.Fatal("expected cached result")
		}
		if !reflect.DeepEqual(loaded.Servers, result.Servers) {
			t.Errorf("loaded %v, want %v", loaded.Servers, result.Servers)
		}
	})

	t.Run("expired cache returns nil", func(t *testing.T) {
		dir := t.TempDir()
		client := NewMCPClient()

		result := &MCPCheckResult{CheckedAt: time.Now().UTC()}
		if err := client.SaveCache(dir, result, -time.Minute); err != nil {
			t.Fatalf("SaveCache failed: %v", err)
		}

		if loaded := client.LoadCache(dir); loaded != nil {
			t.Error("expired cache must be ignored")
		}
	})

	t.Run("missing cache returns nil", func(t *testing.T) {
		client := NewMCPClient()
		if loaded := client.LoadCache(t.TempDir()); loaded != nil {
			t.Error("expected nil for missing cache")
		}
	})
}
