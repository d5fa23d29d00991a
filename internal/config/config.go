// Package config loads the application configuration from a yaml file,
// with credentials coming from the environment (optionally via .env).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port        int `yaml:"port"`
		MetricsPort int `yaml:"metrics_port"`
	} `yaml:"server"`

	Data struct {
		Dir             string `yaml:"dir"`
		PreferencesFile string `yaml:"preferences_file"`
		ExpirationFile  string `yaml:"expiration_file"`
		ArchiveFile     string `yaml:"archive_file"`
	} `yaml:"data"`

	LLM struct {
		Provider       string  `yaml:"provider"`
		Model          string  `yaml:"model"`
		Temperature    float32 `yaml:"temperature"`
		MaxTokens      int32   `yaml:"max_tokens"`
		TimeoutSeconds int     `yaml:"timeout_seconds"`
	} `yaml:"llm"`

	Alerts struct {
		Enabled         bool `yaml:"enabled"`
		IntervalSeconds int  `yaml:"interval_seconds"`
		ExpiringDays    int  `yaml:"expiring_days"`
	} `yaml:"alerts"`

	Log struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
	} `yaml:"log"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Server.MetricsPort = 9090
	cfg.Data.Dir = "user_data"
	cfg.Data.PreferencesFile = "user_preferences.json"
	cfg.Data.ExpirationFile = "expiration_data.json"
	cfg.Data.ArchiveFile = "recipes.db"
	cfg.LLM.Provider = "openai"
	cfg.LLM.Model = "gpt-4o"
	cfg.LLM.Temperature = 0.7
	cfg.LLM.MaxTokens = 2000
	cfg.LLM.TimeoutSeconds = 60
	cfg.Alerts.Enabled = true
	cfg.Alerts.IntervalSeconds = 300
	cfg.Alerts.ExpiringDays = 7
	cfg.Log.Level = "info"
	return cfg
}

// Load reads the configuration file at path, falling back to defaults
// when the file does not exist. API keys are read from the environment;
// a .env file next to the working directory is honored if present.
func Load(path string) (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// PreferencesPath returns the full path of the preferences file.
func (c *Config) PreferencesPath() string {
	return filepath.Join(c.Data.Dir, c.Data.PreferencesFile)
}

// ExpirationPath returns the full path of the expiration file.
func (c *Config) ExpirationPath() string {
	return filepath.Join(c.Data.Dir, c.Data.ExpirationFile)
}

// ArchivePath returns the full path of the recipe archive database.
func (c *Config) ArchivePath() string {
	return filepath.Join(c.Data.Dir, c.Data.ArchiveFile)
}
