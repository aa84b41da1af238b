// file: internal/config/config.go
// version: 2.0.0
// guid: 7b8c9d0e-1f2a-3b4c-5d6e-7f8a9b0c1d2e

package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Thresholds gathers every numeric knob of the decision pipeline. They were
// historically scattered module-level literals; keeping them in one injected
// structure is what makes the boundary tests possible.
type Thresholds struct {
	MinValidYear       int // below this a year string is invalid
	MaxValidYear       int // 0 means "current calendar year"
	ParityWindow       int // top-two count gap at or under this is ambiguous
	AbsurdYear         int // proposed years below this are absurd
	DramaticGap        int // existing/proposed gaps above this are dramatic
	TrustConfidence    int // at or above this, apply without further checks
	MinConfidence      int // below this with no existing year, skip
	CacheMinConfidence int // minimum confidence worth persisting (inclusive)
	DefinitiveScore    int // absolute score that makes a result definitive
	DefinitiveMargin   int // lead over the runner-up that does the same
	StabilityWindow    int // existing-year distance eligible for the tie boost
}

// Config holds application configuration.
type Config struct {
	LibraryPath  string
	SourceType   string // "itunes" or "folder"
	DatabasePath string
	DatabaseType string // "sqlite" (default) or "pebble"
	Region       string // artist home region, ISO 3166-1 alpha-2

	BatchSize         int
	BatchDelay        time.Duration
	UpdateConcurrency int
	LookupTimeout     time.Duration
	RetryAttempts     int
	StuckMinAttempts  int

	DisableFallback bool // legacy always-apply mode, kept for compat tests
	DryRun          bool

	DiscogsToken string

	Thresholds Thresholds
}

// AppConfig is the process-wide configuration, populated by InitConfig.
var AppConfig Config

// DefaultThresholds returns the production threshold set.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinValidYear:       1900,
		MaxValidYear:       0,
		ParityWindow:       2,
		AbsurdYear:         1970,
		DramaticGap:        5,
		TrustConfidence:    70,
		MinConfidence:      30,
		CacheMinConfidence: 50,
		DefinitiveScore:    85,
		DefinitiveMargin:   25,
		StabilityWindow:    2,
	}
}

// InitConfig populates AppConfig from viper (flags, config file, env).
func InitConfig() {
	viper.SetDefault("source_type", "itunes")
	viper.SetDefault("database_type", "sqlite")
	viper.SetDefault("batch_size", 20)
	viper.SetDefault("batch_delay", "2s")
	viper.SetDefault("update_concurrency", 4)
	viper.SetDefault("lookup_timeout", "15s")
	viper.SetDefault("retry_attempts", 3)
	viper.SetDefault("stuck_min_attempts", 3)

	AppConfig = Config{
		LibraryPath:       viper.GetString("library_path"),
		SourceType:        viper.GetString("source_type"),
		DatabasePath:      viper.GetString("database_path"),
		DatabaseType:      viper.GetString("database_type"),
		Region:            viper.GetString("region"),
		BatchSize:         viper.GetInt("batch_size"),
		BatchDelay:        viper.GetDuration("batch_delay"),
		UpdateConcurrency: viper.GetInt("update_concurrency"),
		LookupTimeout:     viper.GetDuration("lookup_timeout"),
		RetryAttempts:     viper.GetInt("retry_attempts"),
		StuckMinAttempts:  viper.GetInt("stuck_min_attempts"),
		DisableFallback:   viper.GetBool("disable_fallback"),
		DryRun:            viper.GetBool("dry_run"),
		DiscogsToken:      viper.GetString("api_keys.discogs"),
		Thresholds:        DefaultThresholds(),
	}

	if viper.IsSet("thresholds.absurd_year") {
		AppConfig.Thresholds.AbsurdYear = viper.GetInt("thresholds.absurd_year")
	}
	if viper.IsSet("thresholds.dramatic_gap") {
		AppConfig.Thresholds.DramaticGap = viper.GetInt("thresholds.dramatic_gap")
	}
	if viper.IsSet("thresholds.trust_confidence") {
		AppConfig.Thresholds.TrustConfidence = viper.GetInt("thresholds.trust_confidence")
	}
	if viper.IsSet("thresholds.min_confidence") {
		AppConfig.Thresholds.MinConfidence = viper.GetInt("thresholds.min_confidence")
	}
	if viper.IsSet("thresholds.cache_min_confidence") {
		AppConfig.Thresholds.CacheMinConfidence = viper.GetInt("thresholds.cache_min_confidence")
	}

	// Normalize database type
	if AppConfig.DatabaseType == "sqlite3" {
		AppConfig.DatabaseType = "sqlite"
	}
}

// Validate rejects configurations that must abort startup. Per-album error
// handling never compensates for these.
func (c *Config) Validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	if c.UpdateConcurrency <= 0 {
		return fmt.Errorf("update_concurrency must be positive, got %d", c.UpdateConcurrency)
	}
	if c.LookupTimeout <= 0 {
		return fmt.Errorf("lookup_timeout must be positive, got %s", c.LookupTimeout)
	}
	if c.BatchDelay < 0 {
		return fmt.Errorf("batch_delay must not be negative, got %s", c.BatchDelay)
	}
	if c.RetryAttempts <= 0 {
		return fmt.Errorf("retry_attempts must be positive, got %d", c.RetryAttempts)
	}
	if c.SourceType != "itunes" && c.SourceType != "folder" {
		return fmt.Errorf("source_type must be itunes or folder, got %q", c.SourceType)
	}
	if c.DatabaseType != "sqlite" && c.DatabaseType != "pebble" {
		return fmt.Errorf("database_type must be sqlite or pebble, got %q", c.DatabaseType)
	}
	t := c.Thresholds
	if t.MinValidYear <= 0 {
		return fmt.Errorf("min_valid_year must be positive, got %d", t.MinValidYear)
	}
	if t.ParityWindow < 0 {
		return fmt.Errorf("parity_window must not be negative, got %d", t.ParityWindow)
	}
	if t.TrustConfidence <= t.MinConfidence {
		return fmt.Errorf("trust_confidence (%d) must exceed min_confidence (%d)", t.TrustConfidence, t.MinConfidence)
	}
	return nil
}
