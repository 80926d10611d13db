// Package config loads the application configuration: built-in defaults,
// overlaid by an optional YAML file, overlaid by environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like
// "30s" or "15m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the standard library form.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the complete application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Depositors DepositorsConfig `yaml:"depositors"`
	Broadcast  BroadcastConfig  `yaml:"broadcast"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `yaml:"addr"`
}

// DatabaseConfig holds the PostgreSQL settings.
type DatabaseConfig struct {
	// URL is a lib/pq connection string or postgres:// URL.
	URL             string   `yaml:"url"`
	MaxOpenConns    int      `yaml:"max_open_conns"`
	MaxIdleConns    int      `yaml:"max_idle_conns"`
	ConnMaxLifetime Duration `yaml:"conn_max_lifetime"`
}

// DepositorsConfig selects how the unique-depositor count is computed.
type DepositorsConfig struct {
	// Approximate switches from exact COUNT(DISTINCT ...) to a
	// HyperLogLog estimate.
	Approximate bool `yaml:"approximate"`
}

// BroadcastConfig controls the periodic WebSocket stats feed.
type BroadcastConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Interval Duration `yaml:"interval"`
}

// LoggingConfig holds the logger settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // logrus level name
	Format string `yaml:"format"` // "text" or "json"
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Database: DatabaseConfig{
			URL:             "postgres://localhost:5432/shielded_stats?sslmode=disable",
			MaxOpenConns:    16,
			MaxIdleConns:    4,
			ConnMaxLifetime: Duration(30 * time.Minute),
		},
		Depositors: DepositorsConfig{
			Approximate: false,
		},
		Broadcast: BroadcastConfig{
			Enabled:  true,
			Interval: Duration(15 * time.Second),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the configuration. path may be empty, in which case only
// defaults and environment overrides apply.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}
	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays environment variables on top of file values.
func (c *Config) applyEnv() {
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("DEPOSITORS_APPROXIMATE"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Depositors.Approximate = parsed
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
}

func (c *Config) validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if c.Database.URL == "" {
		return fmt.Errorf("database.url must not be empty")
	}
	if c.Broadcast.Enabled && c.Broadcast.Interval <= 0 {
		return fmt.Errorf("broadcast.interval must be positive")
	}
	return nil
}
