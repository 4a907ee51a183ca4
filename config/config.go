// Package config loads the console configuration from YAML.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mwantia/commands/history"
	"github.com/mwantia/commands/history/consul"
	"github.com/mwantia/commands/history/memory"
	"github.com/mwantia/commands/history/postgres"
	"github.com/mwantia/commands/history/sqlite"
	"github.com/mwantia/commands/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log     LogConfig     `yaml:"log"`
	History HistoryConfig `yaml:"history"`
	Console ConsoleConfig `yaml:"console"`
}

type LogConfig struct {
	Level    log.LogLevel        `yaml:"level"`
	File     string              `yaml:"file"`
	JSON     bool                `yaml:"json"`
	NoColor  bool                `yaml:"no_color"`
	Rotation *log.LoggerRotation `yaml:"rotation"`
}

// HistoryConfig selects where invocations are recorded. An empty backend
// disables history.
type HistoryConfig struct {
	Backend  string                    `yaml:"backend"`
	Capacity int                       `yaml:"capacity"`
	Path     string                    `yaml:"path"`
	DSN      string                    `yaml:"dsn"`
	Consul   *consul.ConsulStoreConfig `yaml:"consul"`
}

type ConsoleConfig struct {
	Prompt string `yaml:"prompt"`

	// Shell splits lines with shell quoting rules and hands the resulting
	// tokens to commands as prejoined.
	Shell bool `yaml:"shell"`
}

func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: log.Info,
		},
		History: HistoryConfig{
			Backend:  "memory",
			Capacity: 1000,
		},
		Console: ConsoleConfig{
			Prompt: "> ",
		},
	}
}

// Load reads path on top of the defaults.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return Parse(raw)
}

// Parse decodes raw on top of the defaults. Unknown keys are rejected.
func Parse(raw []byte) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)

	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.History.Backend {
	case "", "none", "memory", "consul":
	case "sqlite":
		if c.History.Path == "" {
			return fmt.Errorf("config: history backend 'sqlite' requires a path")
		}
	case "postgres":
		if c.History.DSN == "" {
			return fmt.Errorf("config: history backend 'postgres' requires a dsn")
		}
	default:
		return fmt.Errorf("config: unknown history backend '%s'", c.History.Backend)
	}

	if c.History.Capacity < 0 {
		return fmt.Errorf("config: history capacity must not be negative")
	}

	return nil
}

// Logger builds the logger described by the log section.
func (c LogConfig) Logger(name string) *log.Logger {
	opts := make([]log.LoggerOption, 0)
	if c.File != "" {
		opts = append(opts, log.WithFile(c.File))
	}
	if c.JSON {
		opts = append(opts, log.WithJSON())
	}
	if c.NoColor {
		opts = append(opts, log.WithoutColor())
	}
	if c.Rotation != nil {
		opts = append(opts, log.WithRotation(*c.Rotation))
	}

	return log.NewLogger(name, c.Level, opts...)
}

// Open creates and opens the configured store. It returns nil when history
// is disabled.
func (c HistoryConfig) Open(ctx context.Context) (history.Store, error) {
	var store history.Store

	switch strings.ToLower(c.Backend) {
	case "", "none":
		return nil, nil
	case "memory":
		store = memory.NewMemoryStore(c.Capacity)
	case "sqlite":
		s, err := sqlite.NewSQLiteStore(c.Path)
		if err != nil {
			return nil, err
		}
		store = s
	case "postgres":
		s, err := postgres.NewPostgresStore(ctx, c.DSN)
		if err != nil {
			return nil, err
		}
		store = s
	case "consul":
		s, err := consul.NewConsulStore(c.Consul)
		if err != nil {
			return nil, err
		}
		store = s
	default:
		return nil, fmt.Errorf("config: unknown history backend '%s'", c.Backend)
	}

	if err := store.Open(ctx); err != nil {
		store.Close(ctx)
		return nil, err
	}

	return store, nil
}
