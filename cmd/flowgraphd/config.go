package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the flowgraphd server configuration.
type Config struct {
	Listen      string `yaml:"listen"`
	DatabaseURL string `yaml:"database_url"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
}

// loadConfig reads the yaml config at path, applying defaults for anything
// unset. A missing path yields defaults plus DATABASE_URL from the
// environment.
func loadConfig(path string) (Config, error) {
	cfg := Config{
		Listen:    ":3000",
		LogLevel:  "info",
		LogFormat: "text",
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	return cfg, nil
}
