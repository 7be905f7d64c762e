// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"

	"pottery-cost/core/types"
	"pottery-cost/internal/errors"
	"pottery-cost/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Currency selects the symbol used for every displayed amount
	Currency types.Currency `json:"currency"`

	// Storage configures the saved-session database
	Storage StorageConfig `json:"storage"`

	// Server configures the HTTP API
	Server ServerConfig `json:"server"`

	// Presets configures the shape preset library
	Presets PresetsConfig `json:"presets"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// StorageConfig contains saved-session database settings
type StorageConfig struct {
	// Driver is sqlite or postgres
	Driver string `json:"driver"`

	// DSN is a file path for sqlite or a connection URL for postgres
	DSN string `json:"dsn"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`

	// RequestsPerSecond is the sustained request rate; 0 disables throttling
	RequestsPerSecond float64 `json:"requests_per_second"`

	// Burst is the token bucket size
	Burst int `json:"burst"`
}

// PresetsConfig contains preset library settings
type PresetsConfig struct {
	// URL is the remote CSV; empty means built-in presets only
	URL string `json:"url"`

	// CacheTTLSeconds is how long a fetched preset list is reused
	CacheTTLSeconds int `json:"cache_ttl_seconds"`

	// TimeoutSeconds bounds the remote fetch
	TimeoutSeconds int `json:"timeout_seconds"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default report format
	DefaultFormat string `json:"default_format"`

	// NoColor disables terminal colors
	NoColor bool `json:"no_color"`
}

// DefaultPresetsURL is the community preset sheet
const DefaultPresetsURL = "https://raw.githubusercontent.com/creekroadpottery/pottery-pricing-app/main/form_presets.csv"

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	dbPath := filepath.Join(homeDir, ".pottery-cost", "sessions.db")

	return &Config{
		Version:  "1.0",
		Currency: types.CurrencyUSD,
		Storage: StorageConfig{
			Driver: "sqlite",
			DSN:    dbPath,
		},
		Server: ServerConfig{
			Addr:              ":8080",
			RequestsPerSecond: 20,
			Burst:             40,
		},
		Presets: PresetsConfig{
			URL:             DefaultPresetsURL,
			CacheTTLSeconds: 3600,
			TimeoutSeconds:  5,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns $HOME/.pottery-cost/config.json
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".pottery-cost", "config.json")
}

// Load loads configuration from a file, then applies .env and environment overrides.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.Config("parse "+path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, errors.Config("read "+path, err)
	}

	// Best effort; a missing .env is the normal case.
	_ = godotenv.Load()
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from POTCOST_* environment variables
func (c *Config) ApplyEnv() {
	if v := os.Getenv("POTCOST_DB_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("POTCOST_DB_DSN"); v != "" {
		c.Storage.DSN = v
	}
	if v := os.Getenv("POTCOST_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("POTCOST_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v, ok := os.LookupEnv("POTCOST_PRESETS_URL"); ok {
		c.Presets.URL = v
	}
	if v := os.Getenv("POTCOST_CURRENCY"); v != "" {
		c.Currency = types.Currency(v)
	}
	if v := os.Getenv("POTCOST_RATE_LIMIT"); v != "" {
		if rps, err := strconv.ParseFloat(v, 64); err == nil {
			c.Server.RequestsPerSecond = rps
		}
	}
}

// Validate checks the configuration
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Currency, validation.Required, validation.In(types.CurrencyUSD, types.CurrencyEUR, types.CurrencyGBP)),
	)
	if err == nil {
		err = validation.ValidateStruct(&c.Storage,
			validation.Field(&c.Storage.Driver, validation.Required, validation.In("sqlite", "postgres")),
			validation.Field(&c.Storage.DSN, validation.Required),
		)
	}
	if err == nil {
		err = validation.ValidateStruct(&c.Server,
			validation.Field(&c.Server.Addr, validation.Required),
			validation.Field(&c.Server.RequestsPerSecond, validation.Min(0.0)),
			validation.Field(&c.Server.Burst, validation.Min(1)),
		)
	}
	if err == nil {
		err = validation.ValidateStruct(&c.Output,
			validation.Field(&c.Output.DefaultFormat, validation.In("cli", "json", "markdown", "xlsx")),
		)
	}
	if err == nil {
		err = validation.ValidateStruct(&c.Logging,
			validation.Field(&c.Logging.Level, validation.In("debug", "info", "warn", "error")),
			validation.Field(&c.Logging.Format, validation.In("console", "json")),
		)
	}
	if err != nil {
		return errors.Config("invalid configuration", err)
	}
	return nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
