package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// Well-known MCP data-source server names the CLI skip flags act on.
const (
	MCPServerTeams = "teams"
	MCPServerDocs  = "docs"
)

// MCPServerConfig describes one configured MCP data-source server from
// .mcp.json: either an HTTP endpoint (plus optional auth header) or a
// spawned local process with arguments. The contents are pass-through to
// the session backend; onboard only validates reachability.
type MCPServerConfig struct {
	Type       string   `json:"type"`
	URL        string   `json:"url,omitempty"`
	AuthHeader string   `json:"auth_header,omitempty"`
	Command    string   `json:"command,omitempty"`
	Args       []string `json:"args,omitempty"`
}

// MCPServerStatus is the health check result for one MCP server.
type MCPServerStatus struct {
	Name         string        `json:"name"`
	Type         string        `json:"type"`
	URL          string        `json:"url,omitempty"`
	Command      string        `json:"command,omitempty"`
	Healthy      bool          `json:"healthy"`
	ResponseTime time.Duration `json:"response_time_ms"`
	Error        string        `json:"error,omitempty"`
}

// MCPCheckResult holds the results of an MCP server health check.
type MCPCheckResult struct {
	Servers   []MCPServerStatus `json:"servers"`
	CheckedAt time.Time         `json:"checked_at"`
}

// Covers reports whether the result has a status for every given server.
// A cached result written under a different skip-flag combination may miss
// servers that are active now; such a cache must not be reused.
func (r *MCPCheckResult) Covers(servers map[string]MCPServerConfig) bool {
	checked := make(map[string]bool, len(r.Servers))
	for _, status := range r.Servers {
		checked[status.Name] = true
	}
	for name := range servers {
		if !checked[name] {
			return false
		}
	}
	return true
}

// mcpCacheEntry is a cached MCP check result with its expiry.
type mcpCacheEntry struct {
	Result    MCPCheckResult `json:"result"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// MCPClient loads the MCP server configuration consumed by the session
// backend and validates that the configured servers are reachable.
type MCPClient interface {
	// LoadServers reads the named servers from a .mcp.json file. A missing
	// file yields an empty map, not an error: running without data-source
	// servers is a supported (degraded) mode.
	LoadServers(configPath string) (map[string]MCPServerConfig, error)

	// CheckServers validates the given servers and returns their status.
	CheckServers(servers map[string]MCPServerConfig) *MCPCheckResult

	// LoadCache loads cached check results. Returns nil if stale or missing.
	LoadCache(basePath string) *MCPCheckResult

	// SaveCache saves check results with a TTL.
	SaveCache(basePath string, result *MCPCheckResult, ttl time.Duration) error
}

type mcpClient struct {
	httpClient *http.Client
}

// NewMCPClient creates a new MCP client for configuration loading and
// server validation.
func NewMCPClient() MCPClient {
	return &mcpClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *mcpClient) LoadServers(configPath string) (map[string]MCPServerConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]MCPServerConfig{}, nil
		}
		return nil, fmt.Errorf("reading MCP config %s: %w", configPath, err)
	}

	var config struct {
		MCPServers map[string]MCPServerConfig `json:"mcpServers"`
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing MCP config: %w", err)
	}

	if config.MCPServers == nil {
		config.MCPServers = map[string]MCPServerConfig{}
	}
	return config.MCPServers, nil
}

// ApplySkips removes the teams and docs servers from the configuration when
// the corresponding CLI skip flag is set. The input map is not modified.
func ApplySkips(servers map[string]MCPServerConfig, skipTeams, skipDocs bool) map[string]MCPServerConfig {
	out := make(map[string]MCPServerConfig, len(servers))
	for name, cfg := range servers {
		if skipTeams && name == MCPServerTeams {
			continue
		}
		if skipDocs && name == MCPServerDocs {
			continue
		}
		out[name] = cfg
	}
	return out
}

func (c *mcpClient) CheckServers(servers map[string]MCPServerConfig) *MCPCheckResult {
	result := &MCPCheckResult{
		CheckedAt: time.Now().UTC(),
	}

	for name, server := range servers {
		status := MCPServerStatus{
			Name:    name,
			Type:    server.Type,
			URL:     server.URL,
			Command: server.Command,
		}

		start := time.Now()

		switch server.Type {
		case "http":
			if server.URL != "" {
				resp, err := c.httpClient.Get(server.URL)
				if err != nil {
					status.Error = err.Error()
				} else {
					_ = resp.Body.Close()
					// Any response (even 4xx) means the server is reachable.
					status.Healthy = resp.StatusCode < 500
					if resp.StatusCode >= 500 {
						status.Error = fmt.Sprintf("HTTP %d", resp.StatusCode)
					}
				}
			} else {
				status.Error = "no URL configured"
			}
		case "stdio":
			// For stdio servers, we can only check if the command exists.
			if server.Command != "" {
				_, lookErr := lookPath(server.Command)
				if lookErr != nil {
					status.Error = fmt.Sprintf("command not found: %s", server.Command)
				} else {
					status.Healthy = true
				}
			} else {
				status.Error = "no command configured"
			}
		default:
			status.Error = fmt.Sprintf("unknown server type: %s", server.Type)
		}

		status.ResponseTime = time.Since(start)
		result.Servers = append(result.Servers, status)
	}

	return result
}

func (c *mcpClient) LoadCache(basePath string) *MCPCheckResult {
	cachePath := filepath.Join(basePath, ".onboard_mcp_cache.json")
	data, err := os.ReadFile(cachePath)
	if err != nil {
		return nil
	}

	var entry mcpCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil
	}

	if time.Now().After(entry.ExpiresAt) {
		return nil // Cache expired.
	}

	return &entry.Result
}

func (c *mcpClient) SaveCache(basePath string, result *MCPCheckResult, ttl time.Duration) error {
	entry := mcpCacheEntry{
		Result:    *result,
		ExpiresAt: time.Now().Add(ttl),
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling MCP cache: %w", err)
	}

	cachePath := filepath.Join(basePath, ".onboard_mcp_cache.json")
	return os.WriteFile(cachePath, data, 0o644)
}

// lookPath wraps exec.LookPath for testability.
var lookPath = exec.LookPath
