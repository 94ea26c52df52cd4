// Package config provides configuration data structures for sorter.
package config

import (
	"fmt"
	"strings"
	"time"

	serrors "github.com/idilsaglam/sorter/internal/errors"
)

// Config represents the complete sorter configuration loaded from
// .sorter/config.yaml, SORTER_* environment variables and flags.
type Config struct {
	Store  StoreConfig  `mapstructure:"store"  yaml:"store"`
	Seed   SeedConfig   `mapstructure:"seed"   yaml:"seed"`
	Enrich EnrichConfig `mapstructure:"enrich" yaml:"enrich"`
	Log    LogConfig    `mapstructure:"log"    yaml:"log"`
	UI     UIConfig     `mapstructure:"ui"     yaml:"ui"`
}

// StoreConfig configures the classification store and its timer.
type StoreConfig struct {
	// TTL is the number of ticks a bucketed item survives (default: 3).
	TTL int `mapstructure:"ttl" yaml:"ttl"`
	// Tick is the countdown cadence (default: 1s).
	Tick time.Duration `mapstructure:"tick" yaml:"tick"`
}

// SeedConfig selects the starting item list.
type SeedConfig struct {
	// Path is a JSON or YAML seed file. Empty means the built-in list.
	Path string `mapstructure:"path" yaml:"path"`
}

// EnrichConfig configures the one-shot user statistics fetch.
type EnrichConfig struct {
	// Enabled turns the fetch on (default: true).
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// URL is the user listing endpoint.
	URL string `mapstructure:"url" yaml:"url"`
	// GroupBy is the dotted path users are grouped by (default: company.department).
	GroupBy string `mapstructure:"group_by" yaml:"group_by"`
	// ColorField is the dotted path counted in the color histogram (default: hair.color).
	ColorField string `mapstructure:"color_field" yaml:"color_field"`
	// Timeout bounds the request (default: 10s).
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
	// Token is sent as a bearer token when set.
	Token string `mapstructure:"token" yaml:"token"`
}

// LogConfig configures the file logger.
type LogConfig struct {
	// Level is debug, info, warn or error (default: info).
	Level string `mapstructure:"level" yaml:"level"`
	// Dir is where log files are written (default: .sorter/logs).
	Dir string `mapstructure:"dir" yaml:"dir"`
	// Console mirrors log lines to stderr.
	Console bool `mapstructure:"console" yaml:"console"`
	// JSON switches the encoder from console to JSON.
	JSON bool `mapstructure:"json" yaml:"json"`
	// MaxFiles is how many log files are kept (default: 10).
	MaxFiles int `mapstructure:"max_files" yaml:"max_files"`
}

// UIConfig configures presentation.
type UIConfig struct {
	// Theme is classic, neon or mono (default: classic).
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// Defaults.
const (
	DefaultTTL           = 3
	DefaultTick          = time.Second
	DefaultEnrichURL     = "https://dummyjson.com/users"
	DefaultGroupBy       = "company.department"
	DefaultColorField    = "hair.color"
	DefaultEnrichTimeout = 10 * time.Second
	DefaultLogLevel      = "info"
	DefaultLogDir        = ".sorter/logs"
	DefaultMaxLogFiles   = 10
	DefaultTheme         = "classic"
)

// ValidThemes lists the accepted ui.theme values.
var ValidThemes = []string{"classic", "neon", "mono"}

// ValidLogLevels lists the accepted log.level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		Store: StoreConfig{TTL: DefaultTTL, Tick: DefaultTick},
		Enrich: EnrichConfig{
			Enabled:    true,
			URL:        DefaultEnrichURL,
			GroupBy:    DefaultGroupBy,
			ColorField: DefaultColorField,
			Timeout:    DefaultEnrichTimeout,
		},
		Log: LogConfig{
			Level:    DefaultLogLevel,
			Dir:      DefaultLogDir,
			MaxFiles: DefaultMaxLogFiles,
		},
		UI: UIConfig{Theme: DefaultTheme},
	}
}

// ApplyDefaults fills zero-valued fields that have a default.
func (c *Config) ApplyDefaults() {
	if c.Store.Tick == 0 {
		c.Store.Tick = DefaultTick
	}
	if c.Enrich.URL == "" {
		c.Enrich.URL = DefaultEnrichURL
	}
	if c.Enrich.GroupBy == "" {
		c.Enrich.GroupBy = DefaultGroupBy
	}
	if c.Enrich.ColorField == "" {
		c.Enrich.ColorField = DefaultColorField
	}
	if c.Enrich.Timeout == 0 {
		c.Enrich.Timeout = DefaultEnrichTimeout
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Dir == "" {
		c.Log.Dir = DefaultLogDir
	}
	if c.Log.MaxFiles == 0 {
		c.Log.MaxFiles = DefaultMaxLogFiles
	}
	if c.UI.Theme == "" {
		c.UI.Theme = DefaultTheme
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Store.TTL < 1 {
		return serrors.ConfigValidationError("store.ttl", fmt.Sprintf("ttl must be at least 1, got %d", c.Store.TTL), nil)
	}
	if c.Store.Tick <= 0 {
		return serrors.ConfigValidationError("store.tick", fmt.Sprintf("tick must be positive, got %s", c.Store.Tick), nil)
	}
	if c.Enrich.Timeout < 0 {
		return serrors.ConfigValidationError("enrich.timeout", "timeout cannot be negative", nil)
	}
	if !contains(ValidThemes, c.UI.Theme) {
		return serrors.ConfigValidationError("ui.theme", fmt.Sprintf("unknown theme %q", c.UI.Theme), ValidThemes)
	}
	if !contains(ValidLogLevels, strings.ToLower(c.Log.Level)) {
		return serrors.ConfigValidationError("log.level", fmt.Sprintf("unknown level %q", c.Log.Level), ValidLogLevels)
	}
	if c.Log.MaxFiles < 0 {
		return serrors.ConfigValidationError("log.max_files", "max_files cannot be negative", nil)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
