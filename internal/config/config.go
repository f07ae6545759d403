package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for jobsink.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Adzuna   AdzunaConfig   `yaml:"adzuna"`
	API      APIConfig      `yaml:"api"`
}

// DatabaseConfig locates the SQLite database file.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AdzunaConfig holds the Adzuna application credentials.
type AdzunaConfig struct {
	AppID  string `yaml:"app_id"`
	AppKey string `yaml:"app_key"`
}

// APIConfig holds the remaining provider keys.
type APIConfig struct {
	JoobleAPIKey string `yaml:"jooble_api_key"`
}

const defaultDatabasePath = "jobs.db"

// Load reads and parses the YAML config file at path. Environment variables
// referenced as ${VAR} in the file are expanded before parsing, so
// credentials can live in the environment (or a .env file) rather than on
// disk. A missing or unreadable file is an error; missing provider
// credentials are not — the affected provider is skipped at run time.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = defaultDatabasePath
	}

	return &cfg, nil
}
