package models

// SessionConfig holds settings for constructing the chat session backend.
type SessionConfig struct {
	Model          string `yaml:"model" mapstructure:"model"`
	BaseURL        string `yaml:"base_url" mapstructure:"base_url"`
	APIKeyEnv      string `yaml:"api_key_env" mapstructure:"api_key_env"`
	TimeoutSeconds int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// DefaultsConfig holds fallback values applied when a generate run omits
// the corresponding flags.
type DefaultsConfig struct {
	Team      string `yaml:"team" mapstructure:"team"`
	Recipient string `yaml:"recipient" mapstructure:"recipient"`
}

// GlobalConfig holds system-wide settings read from .onboardrc via Viper.
// The struct mirrors the nested layout of the file.
type GlobalConfig struct {
	OutputDir string         `yaml:"output_dir" mapstructure:"output_dir"`
	Defaults  DefaultsConfig `yaml:"defaults" mapstructure:"defaults"`
	Session   SessionConfig  `yaml:"session" mapstructure:"session"`
}
