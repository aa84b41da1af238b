// file: internal/config/config_test.go
// version: 1.1.0
// guid: 26f08989-30ad-4471-9783-26e512287344

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		SourceType:        "itunes",
		DatabaseType:      "sqlite",
		BatchSize:         20,
		BatchDelay:        time.Second,
		UpdateConcurrency: 4,
		LookupTimeout:     10 * time.Second,
		RetryAttempts:     3,
		Thresholds:        DefaultThresholds(),
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero batch size", func(c *Config) { c.BatchSize = 0 }, "batch_size"},
		{"zero concurrency", func(c *Config) { c.UpdateConcurrency = 0 }, "update_concurrency"},
		{"zero timeout", func(c *Config) { c.LookupTimeout = 0 }, "lookup_timeout"},
		{"negative delay", func(c *Config) { c.BatchDelay = -time.Second }, "batch_delay"},
		{"zero retries", func(c *Config) { c.RetryAttempts = 0 }, "retry_attempts"},
		{"bad source", func(c *Config) { c.SourceType = "spotify" }, "source_type"},
		{"bad db type", func(c *Config) { c.DatabaseType = "bolt" }, "database_type"},
		{"trust below min", func(c *Config) { c.Thresholds.TrustConfidence = 20 }, "trust_confidence"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestDefaultThresholds(t *testing.T) {
	th := DefaultThresholds()
	if th.ParityWindow != 2 || th.AbsurdYear != 1970 || th.DramaticGap != 5 {
		t.Fatalf("unexpected defaults: %+v", th)
	}
	if th.CacheMinConfidence != 50 || th.TrustConfidence != 70 || th.MinConfidence != 30 {
		t.Fatalf("unexpected confidence defaults: %+v", th)
	}
}
