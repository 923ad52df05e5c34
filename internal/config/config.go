// Package config assembles the runtime configuration. Environment
// variables win; an optional YAML (or JSON) config file fills in
// anything the environment leaves unset; compiled defaults cover the
// rest.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Config struct {
	// HTTP server
	Port string `json:"port" yaml:"port"`

	// Persistence
	Backend      string `json:"backend" yaml:"backend"`
	DataDir      string `json:"data_dir" yaml:"data_dir"`
	SQLiteDBPath string `json:"sqlite_db_path" yaml:"sqlite_db_path"`

	// Logging
	LogLevel string `json:"log_level" yaml:"log_level"`

	// Server timeouts
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout" yaml:"idle_timeout"`
}

func defaults() *Config {
	return &Config{
		Port:         "8084",
		Backend:      BackendFile,
		DataDir:      "./data",
		SQLiteDBPath: "./data/kharcha.db",
		LogLevel:     "info",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Load builds the configuration from an optional file plus the
// environment. Pass an empty path to skip the file layer.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	cfg.Port = getEnv("KHARCHA_PORT", cfg.Port)
	cfg.Backend = getEnv("KHARCHA_BACKEND", cfg.Backend)
	cfg.DataDir = getEnv("KHARCHA_DATA_DIR", cfg.DataDir)
	cfg.SQLiteDBPath = getEnv("KHARCHA_SQLITE_DB_PATH", cfg.SQLiteDBPath)
	cfg.LogLevel = getEnv("KHARCHA_LOG_LEVEL", cfg.LogLevel)
	cfg.ReadTimeout = getEnvDuration("KHARCHA_READ_TIMEOUT", cfg.ReadTimeout)
	cfg.WriteTimeout = getEnvDuration("KHARCHA_WRITE_TIMEOUT", cfg.WriteTimeout)
	cfg.IdleTimeout = getEnvDuration("KHARCHA_IDLE_TIMEOUT", cfg.IdleTimeout)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile reads YAML first and falls back to JSON, so both formats
// work regardless of extension.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}
	return nil
}

// Validate returns the combined list of configuration problems.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.Backend {
	case BackendFile:
		if c.DataDir == "" {
			errs = append(errs, "data_dir cannot be empty when using the file backend")
		}
	case BackendSQLite:
		if c.SQLiteDBPath == "" {
			errs = append(errs, "sqlite_db_path cannot be empty when using the sqlite backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid backend %q: must be %q or %q", c.Backend, BackendFile, BackendSQLite))
	}

	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 || c.IdleTimeout <= 0 {
		errs = append(errs, "timeouts must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
