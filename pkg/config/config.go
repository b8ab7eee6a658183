// Package config loads the server configuration from a YAML file with
// environment variable overrides for deployment-sensitive values.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/referralworks/refnet/pkg/validation"
)

// Config is the full server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Source   SourceConfig   `yaml:"source"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	CORSOrigins     []string      `yaml:"cors_origins"`
}

// DatabaseConfig configures the collaborator record store connection. When no
// URL is set the server falls back to the records file, if one is configured.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// SourceConfig selects a non-database record source.
type SourceConfig struct {
	// RecordsFile is a JSON file of raw record payloads, used when no
	// database is configured.
	RecordsFile string `yaml:"records_file"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the configuration file at path (optional, defaults apply when
// empty), applies environment overrides, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overlays deployment-sensitive values from the environment.
func (c *Config) applyEnv() {
	if v := os.Getenv("REFNET_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("REFNET_DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("REFNET_RECORDS_FILE"); v != "" {
		c.Source.RecordsFile = v
	}
	if v := os.Getenv("REFNET_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks the configuration, reporting every problem at once.
func (c Config) Validate() error {
	return validation.NewConfigValidator("Config").
		Required("Server.Addr", c.Server.Addr).
		MinDuration("Server.ReadTimeout", c.Server.ReadTimeout, time.Second).
		MinDuration("Server.WriteTimeout", c.Server.WriteTimeout, time.Second).
		MinDuration("Server.ShutdownTimeout", c.Server.ShutdownTimeout, time.Second).
		OneOf("Logging.Level", c.Logging.Level, "debug", "info", "warn", "error").
		Err()
}
