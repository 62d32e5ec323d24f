package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/valter-silva-au/onboard/internal/core"
	"github.com/valter-silva-au/onboard/internal/integration"
	"github.com/valter-silva-au/onboard/internal/observability"
)

// mcpCacheTTL bounds how long a cached MCP health check stays valid.
const mcpCacheTTL = 5 * time.Minute

// setupSession constructs the chat session for a command run: it loads the
// MCP server configuration, applies the skip flags, health-checks the
// remaining servers, and builds the real backend adapter. When the backend
// is unavailable the offline demo session is substituted with a warning;
// any other construction error is a configuration fault and aborts the run.
func setupSession(skipTeams, skipDocs bool, modelOverride string) (integration.ChatSession, error) {
	servers, err := MCPClient.LoadServers(filepath.Join(BasePath, ".mcp.json"))
	if err != nil {
		return nil, fmt.Errorf("loading MCP configuration: %w", err)
	}
	servers = integration.ApplySkips(servers, skipTeams, skipDocs)

	if len(servers) > 0 {
		checkMCPServers(servers)
	}

	sessionCfg := Config.Session
	if modelOverride != "" {
		sessionCfg.Model = modelOverride
	}

	session, err := integration.NewHTTPSession(sessionCfg)
	if err != nil {
		if !errors.Is(err, integration.ErrBackendUnavailable) {
			return nil, fmt.Errorf("constructing chat session: %w", err)
		}

		fmt.Fprintf(os.Stderr, "Warning: %v — using offline demo session\n", err)
		if EventLog != nil {
			_ = EventLog.Write(observability.Event{
				Time:    time.Now().UTC(),
				Level:   "WARN",
				Type:    observability.EventDemoFallback,
				Message: "chat backend unavailable, using demo session",
				Data:    map[string]any{"reason": err.Error()},
			})
		}
		return integration.NewDemoSession(), nil
	}

	return session, nil
}

// checkMCPServers validates the active MCP servers, reusing a recent cached
// result when available. Unhealthy servers produce warnings only: the
// session backend decides how to cope with a missing data source.
func checkMCPServers(servers map[string]integration.MCPServerConfig) {
	result := MCPClient.LoadCache(BasePath)
	if result == nil || !result.Covers(servers) {
		result = MCPClient.CheckServers(servers)
		_ = MCPClient.SaveCache(BasePath, result, mcpCacheTTL)
	}

	for _, status := range result.Servers {
		if _, active := servers[status.Name]; !active {
			continue
		}
		if !status.Healthy {
			fmt.Fprintf(os.Stderr, "Warning: MCP server %q unhealthy: %s\n", status.Name, status.Error)
		}
	}

	if EventLog != nil {
		healthy := 0
		for _, status := range result.Servers {
			if status.Healthy {
				healthy++
			}
		}
		_ = EventLog.Write(observability.Event{
			Time:    time.Now().UTC(),
			Level:   "INFO",
			Type:    observability.EventMCPChecked,
			Message: "MCP servers checked",
			Data: map[string]any{
				"configured": len(servers),
				"healthy":    healthy,
			},
		})
	}
}

// sessionTimeout returns the per-call timeout configured for session
// round-trips.
func sessionTimeout() time.Duration {
	return time.Duration(Config.Session.TimeoutSeconds) * time.Second
}

// eventLogObserver adapts the event log into a pipeline stage observer.
// Returns nil when observability is disabled.
func eventLogObserver() core.StageObserver {
	if EventLog == nil {
		return nil
	}
	return func(ev core.StageEvent) {
		level := "INFO"
		eventType := observability.EventStageStarted
		switch ev.Status {
		case core.StageCompleted:
			eventType = observability.EventStageCompleted
		case core.StageFailed:
			eventType = observability.EventStageFailed
			level = "ERROR"
		}

		data := map[string]any{
			"run_id": ev.RunID,
			"step":   ev.Step,
		}
		if ev.Error != "" {
			data["error"] = ev.Error
		}
		for k, v := range ev.Metrics {
			data[k] = v
		}

		_ = EventLog.Write(observability.Event{
			Time:    time.Now().UTC(),
			Level:   level,
			Type:    eventType,
			Message: eventType,
			Data:    data,
		})
	}
}

// combineObservers fans one stage event out to every non-nil observer.
func combineObservers(observers ...core.StageObserver) core.StageObserver {
	var active []core.StageObserver
	for _, o := range observers {
		if o != nil {
			active = append(active, o)
		}
	}
	if len(active) == 0 {
		return nil
	}
	return func(ev core.StageEvent) {
		for _, o := range active {
			o(ev)
		}
	}
}
