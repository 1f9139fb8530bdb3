package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jbweber/homelab/clinic/internal/datastore"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the config reads,
// e.g. CLINIC_DB_PATH.
const EnvPrefix = "CLINIC"

// Config holds all configuration for the clinic data store
type Config struct {
	DBPath            string `mapstructure:"db_path"`
	LogLevel          string `mapstructure:"log_level"`
	LogFormat         string `mapstructure:"log_format"` // console or json
	Seed              bool   `mapstructure:"seed"`
	MaxOpenConns      int    `mapstructure:"max_open_conns"`
	PrepareStatements bool   `mapstructure:"prepare_statements"`
}

var defaults = map[string]any{
	"db_path":            "~/clinic/data/clinic.db",
	"log_level":          "info",
	"log_format":         "console",
	"seed":               true,
	"max_open_conns":     10,
	"prepare_statements": false,
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		DBPath:            defaults["db_path"].(string),
		LogLevel:          defaults["log_level"].(string),
		LogFormat:         defaults["log_format"].(string),
		Seed:              defaults["seed"].(bool),
		MaxOpenConns:      defaults["max_open_conns"].(int),
		PrepareStatements: defaults["prepare_statements"].(bool),
	}
}

// Load builds a Config from defaults, an optional config file and the
// environment, in increasing order of precedence. A .env file in the
// working directory is loaded into the environment first if present.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
		// Unmarshal only sees env values for bound keys
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be checked by type alone.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log_format must be \"console\" or \"json\", got %q", c.LogFormat)
	}
	if c.MaxOpenConns < 0 {
		return fmt.Errorf("max_open_conns must not be negative, got %d", c.MaxOpenConns)
	}
	return nil
}

// NewLogger creates the process logger writing to w
func (c *Config) NewLogger(w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}

	out := w
	if c.LogFormat == "console" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

// InitializeDatabase opens the configured database, running any pending
// migrations, and tunes the connection pool.
func (c *Config) InitializeDatabase(ctx context.Context) (*datastore.Datastore, error) {
	dbPath := c.expandPath(c.DBPath)
	memory := datastore.IsMemory(dbPath)

	if !memory {
		// Ensure database directory exists
		dbDir := filepath.Dir(strings.TrimPrefix(dbPath, "file:"))
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := datastore.DSN(dbPath, ConnectionPragmas()...)
	ds, err := datastore.Open(ctx, dsn, datastore.Options{
		Seed:              c.Seed,
		MaxOpenConns:      c.MaxOpenConns,
		PrepareStatements: c.PrepareStatements,
	})
	if err != nil {
		return nil, err
	}

	// Recycling connections would drop an in-memory database
	if memory {
		return ds, nil
	}

	OptimizeDatabaseConnection(ds.DB)
	if err := ApplyPragmaOptimizations(ctx, ds.DB); err != nil {
		ds.Close()
		return nil, fmt.Errorf("failed to apply performance optimizations: %w", err)
	}

	return ds, nil
}

// expandPath expands ~ to home directory
func (c *Config) expandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Return original path if we can't get home dir
		return path
	}

	return filepath.Join(homeDir, path[2:])
}
