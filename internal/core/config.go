// Package core contains the business logic for onboard: the response
// extractor, stage runner, data collectors, guide synthesis, and the
// pipeline orchestrator that ties them together.
package core

import (
	"fmt"

	"github.com/spf13/viper"
	"github.com/valter-silva-au/onboard/pkg/models"
)

// ConfigurationManager loads and validates configuration from the
// .onboardrc file in the base path.
type ConfigurationManager interface {
	LoadGlobalConfig() (*models.GlobalConfig, error)
	ValidateConfig(cfg *models.GlobalConfig) error
}

// viperConfigManager implements ConfigurationManager using Viper for
// reading YAML configuration files.
type viperConfigManager struct {
	// basePath is the root directory where .onboardrc resides.
	basePath string
}

// NewConfigurationManager creates a new ConfigurationManager that reads
// configuration files relative to basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// defaultGlobalConfig returns a GlobalConfig populated with sensible defaults.
func defaultGlobalConfig() *models.GlobalConfig {
	return &models.GlobalConfig{
		OutputDir: "onboarding-guides",
		Defaults: models.DefaultsConfig{
			Team:      "",
			Recipient: "New Team Member",
		},
		Session: models.SessionConfig{
			Model:          "gpt-4o",
			BaseURL:        "",
			APIKeyEnv:      "OPENAI_API_KEY",
			TimeoutSeconds: 120,
		},
	}
}

// LoadGlobalConfig reads the .onboardrc file from the base path using Viper.
// If the file does not exist, sensible defaults are returned.
func (cm *viperConfigManager) LoadGlobalConfig() (*models.GlobalConfig, error) {
	cfg := defaultGlobalConfig()

	v := viper.New()
	v.SetConfigName(".onboardrc")
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)

	// Set Viper defaults so missing keys fall back gracefully.
	v.SetDefault("output_dir", cfg.OutputDir)
	v.SetDefault("defaults.team", cfg.Defaults.Team)
	v.SetDefault("defaults.recipient", cfg.Defaults.Recipient)
	v.SetDefault("session.model", cfg.Session.Model)
	v.SetDefault("session.base_url", cfg.Session.BaseURL)
	v.SetDefault("session.api_key_env", cfg.Session.APIKeyEnv)
	v.SetDefault("session.timeout_seconds", cfg.Session.TimeoutSeconds)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file found — return defaults.
			return cfg, nil
		}
		return nil, fmt.Errorf("reading .onboardrc: %w", err)
	}

	// Map nested YAML keys to the flat GlobalConfig fields.
	cfg.OutputDir = v.GetString("output_dir")
	cfg.Defaults.Team = v.GetString("defaults.team")
	cfg.Defaults.Recipient = v.GetString("defaults.recipient")
	cfg.Session.Model = v.GetString("session.model")
	cfg.Session.BaseURL = v.GetString("session.base_url")
	cfg.Session.APIKeyEnv = v.GetString("session.api_key_env")
	cfg.Session.TimeoutSeconds = v.GetInt("session.timeout_seconds")

	return cfg, nil
}

// ValidateConfig checks the provided configuration for invalid values and
// returns a clear error message identifying the problem.
func (cm *viperConfigManager) ValidateConfig(cfg *models.GlobalConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}
	if cfg.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if cfg.Session.Model == "" {
		return fmt.Errorf("session.model must not be empty")
	}
	if cfg.Session.TimeoutSeconds <= 0 {
		return fmt.Errorf("session.timeout_seconds must be positive, got %d", cfg.Session.TimeoutSeconds)
	}
	return nil
}
