package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// DefaultConfigPath is the default path to the config file relative to the working directory.
	DefaultConfigPath = ".sorter/config.yaml"

	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "SORTER"
)

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"ttl":       "store.ttl",
	"tick":      "store.tick",
	"seed":      "seed.path",
	"theme":     "ui.theme",
	"no-enrich": "enrich.enabled",
	"verbose":   "log.console",
	"log-level": "log.level",
}

// Loader handles loading configuration from files, environment and flags.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader with defaults registered,
// so every key can be overridden by SORTER_<SECTION>_<KEY>.
func NewLoader() *Loader {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := NewConfig()
	v.SetDefault("store.ttl", d.Store.TTL)
	v.SetDefault("store.tick", d.Store.Tick)
	v.SetDefault("seed.path", d.Seed.Path)
	v.SetDefault("enrich.enabled", d.Enrich.Enabled)
	v.SetDefault("enrich.url", d.Enrich.URL)
	v.SetDefault("enrich.group_by", d.Enrich.GroupBy)
	v.SetDefault("enrich.color_field", d.Enrich.ColorField)
	v.SetDefault("enrich.timeout", d.Enrich.Timeout)
	v.SetDefault("enrich.token", d.Enrich.Token)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.dir", d.Log.Dir)
	v.SetDefault("log.console", d.Log.Console)
	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("log.max_files", d.Log.MaxFiles)
	v.SetDefault("ui.theme", d.UI.Theme)

	return &Loader{v: v}
}

// BindFlags wires known flags in fs to their config keys. Flags only
// override the file and environment when set on the command line.
// no-enrich is inverted onto enrich.enabled.
func (l *Loader) BindFlags(fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if name == "no-enrich" {
			if f.Changed && f.Value.String() == "true" {
				l.v.Set(key, false)
			}
			continue
		}
		if err := l.v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// LoadConfig reads path (or DefaultConfigPath when empty), merges
// environment and flags, applies defaults and validates the result.
// A missing file is only an error when path was given explicitly.
func (l *Loader) LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err == nil {
		l.v.SetConfigFile(path)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, &LoadError{Path: path, Message: "failed to read config file", Err: err}
		}
	} else if explicit || !errors.Is(err, os.ErrNotExist) {
		return nil, &LoadError{Path: path, Message: "config file not found", Err: err}
	}

	cfg := NewConfig()
	if err := l.v.Unmarshal(cfg, viperDecodeHook); err != nil {
		return nil, &LoadError{Path: path, Message: "failed to parse config file", Err: err}
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, &LoadError{Path: path, Message: "configuration validation failed", Err: err}
	}
	return cfg, nil
}

// viperDecodeHook lets durations be written as "1s" or "500ms".
func viperDecodeHook(dc *mapstructure.DecoderConfig) {
	dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// LoadError represents an error that occurred while loading configuration.
type LoadError struct {
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load is a convenience function that creates a new Loader and loads configuration.
func Load(path string) (*Config, error) {
	return NewLoader().LoadConfig(path)
}
