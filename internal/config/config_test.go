package config

import (
	"os"
	"path/filepath"
	"testing"

	"pottery-cost/core/types"
	"pottery-cost/internal/errors"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Storage.Driver != "sqlite" {
		t.Errorf("Storage.Driver = %q, want sqlite", cfg.Storage.Driver)
	}
	if cfg.Currency != types.CurrencyUSD {
		t.Errorf("Currency = %q, want USD", cfg.Currency)
	}
}

func TestLoadPartialFileKeepsOtherDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"currency":"EUR","server":{"addr":":9090","burst":5}}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Currency != types.CurrencyEUR {
		t.Errorf("Currency = %q, want EUR", cfg.Currency)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.Burst != 5 {
		t.Errorf("server overrides not applied: %+v", cfg.Server)
	}
	if cfg.Presets.CacheTTLSeconds != 3600 {
		t.Errorf("Presets.CacheTTLSeconds = %d, want default 3600", cfg.Presets.CacheTTLSeconds)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("POTCOST_DB_DRIVER", "postgres")
	t.Setenv("POTCOST_DB_DSN", "postgres://localhost/pots?sslmode=disable")
	t.Setenv("POTCOST_PRESETS_URL", "")
	t.Setenv("POTCOST_RATE_LIMIT", "2.5")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.json"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Storage.Driver != "postgres" {
		t.Errorf("Storage.Driver = %q, want postgres", cfg.Storage.Driver)
	}
	if cfg.Presets.URL != "" {
		t.Errorf("an empty POTCOST_PRESETS_URL should disable the remote list, got %q", cfg.Presets.URL)
	}
	if cfg.Server.RequestsPerSecond != 2.5 {
		t.Errorf("RequestsPerSecond = %v, want 2.5", cfg.Server.RequestsPerSecond)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"driver", func(c *Config) { c.Storage.Driver = "mysql" }},
		{"currency", func(c *Config) { c.Currency = "JPY" }},
		{"burst", func(c *Config) { c.Server.Burst = 0 }},
		{"format", func(c *Config) { c.Output.DefaultFormat = "pdf" }},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !errors.IsType(err, errors.TypeConfig) {
				t.Errorf("expected CONFIG_ERROR, got %v", err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := Default()
	cfg.Currency = types.CurrencyGBP

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Currency != types.CurrencyGBP {
		t.Errorf("Currency = %q after round trip", loaded.Currency)
	}
}
