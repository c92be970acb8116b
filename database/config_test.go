package database

import (
	"strings"
	"testing"
)

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.DSN == "" {
		t.Error("expected default DSN")
	}
	if cfg.MaxOpenConns != 25 {
		t.Errorf("expected 25 max open conns, got %d", cfg.MaxOpenConns)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("expected 5 retries, got %d", cfg.MaxRetries)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"idle exceeds open", func(c *Config) { c.MaxIdleConns = 50 }, "max_idle_conns"},
		{"bad lifetime", func(c *Config) { c.ConnMaxLifetime = "soon" }, "conn_max_lifetime"},
		{"bad slow threshold", func(c *Config) { c.SlowQueryThreshold = "fast" }, "slow_query_threshold"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Config{}
			cfg.ApplyDefaults()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error mentioning %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	if parseLogLevel("silent") == parseLogLevel("info") {
		t.Fatal("expected distinct log levels")
	}
	if parseLogLevel("WARN") != parseLogLevel("warn") {
		t.Fatal("expected case-insensitive parsing")
	}
}
