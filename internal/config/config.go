package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user preferences
type Config struct {
	// DataPath is the SQLite database location. Ignored when DatabaseURL is set.
	DataPath string `yaml:"data_path" json:"data_path"`
	// DatabaseURL switches the store to Postgres (server deployments)
	DatabaseURL string `yaml:"database_url" json:"database_url"`

	// Plan generation service
	PlanServiceURL string `yaml:"plan_service_url" json:"plan_service_url"`
	UserID         string `yaml:"user_id" json:"user_id"`

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	dataPath, logPath := "", ""
	if home != "" {
		dataPath = filepath.Join(home, ".planward", "planward.db")
		logPath = filepath.Join(home, ".planward", "logs", "planward.log")
	}

	return &Config{
		DataPath:       getEnv("PLANWARD_DATA_PATH", dataPath),
		DatabaseURL:    getEnv("PLANWARD_DATABASE_URL", ""),
		PlanServiceURL: getEnv("PLANWARD_PLAN_SERVICE_URL", "http://localhost:8090"),
		UserID:         getEnv("PLANWARD_USER_ID", ""),
		LogLevel:       getEnv("PLANWARD_LOG_LEVEL", "INFO"),
		LogFile:        getEnv("PLANWARD_LOG_FILE", logPath),
		LogConsole:     getEnv("PLANWARD_LOG_CONSOLE", "false") == "true",
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".planward", "config.yaml"), nil
}

// Load loads config from ~/.planward/config.yaml, falling back to defaults
// when the file does not exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save saves config to ~/.planward/config.yaml
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
