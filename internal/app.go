// Package internal provides the App struct that wires all components of
// onboard together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/valter-silva-au/onboard/internal/cli"
	"github.com/valter-silva-au/onboard/internal/core"
	"github.com/valter-silva-au/onboard/internal/integration"
	"github.com/valter-silva-au/onboard/internal/observability"
	"github.com/valter-silva-au/onboard/internal/storage"
	"github.com/valter-silva-au/onboard/pkg/models"
)

// App holds all service dependencies for onboard.
type App struct {
	BasePath string

	// Configuration
	ConfigMgr core.ConfigurationManager
	Config    *models.GlobalConfig

	// Storage layer
	GuideStore storage.GuideStoreManager

	// Integration services
	MCPClient integration.MCPClient

	// Observability
	EventLog observability.EventLog
}

// NewApp creates and wires all components of onboard. basePath is the root
// directory where configuration and the event log live (typically the
// directory containing .onboardrc).
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath)
	cfg, err := app.ConfigMgr.LoadGlobalConfig()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if err := app.ConfigMgr.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	app.Config = cfg

	// --- Storage layer ---
	outputDir := cfg.OutputDir
	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(basePath, outputDir)
	}
	app.GuideStore = storage.NewGuideStore(outputDir)

	// --- Integration services ---
	app.MCPClient = integration.NewMCPClient()

	// --- Observability ---
	eventLogPath := filepath.Join(basePath, ".onboard_events.jsonl")
	app.EventLog, err = observability.NewJSONLEventLog(eventLogPath)
	if err != nil {
		// Non-fatal: disable observability if the log can't be created.
		app.EventLog = nil
	}

	// --- Wire CLI package-level variables ---
	cli.BasePath = basePath
	cli.Config = cfg
	cli.GuideStore = app.GuideStore
	cli.MCPClient = app.MCPClient
	cli.EventLog = app.EventLog

	return app, nil
}

// Close releases resources held by the App, such as the event log file
// handle. It is safe to call Close on an App whose EventLog is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the base path for the onboard data directory.
// It checks the ONBOARD_HOME env var, then walks up from the current
// directory looking for a .onboardrc file, and falls back to the current
// directory.
func ResolveBasePath() string {
	if home := os.Getenv("ONBOARD_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".onboardrc")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	cwd, _ := os.Getwd()
	return cwd
}
