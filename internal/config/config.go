// Package config loads and saves pocket's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Environment variables that override the config file.
const (
	EnvDataDir  = "POCKET_DATA_DIR"
	EnvTimezone = "POCKET_TIMEZONE"
	EnvLogLevel = "POCKET_LOG_LEVEL"
)

// Config holds all pocket configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Budget     BudgetConfig     `toml:"budget"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir         string `toml:"data_dir,omitempty"`
	DefaultSort     string `toml:"default_sort"`
	DefaultOrder    string `toml:"default_order"`
	DefaultDays     int    `toml:"default_days"` // 0 means no date range
	Timezone        string `toml:"timezone"`
	SampleWhenEmpty bool   `toml:"sample_when_empty"`
}

// BudgetConfig holds per-category limit overrides.
type BudgetConfig struct {
	Limits map[string]float64 `toml:"limits,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultSort:     "date",
			DefaultOrder:    "desc",
			Timezone:        "Local",
			SampleWhenEmpty: true,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pocket")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "pocket")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// LoadEnv reads KEY=value pairs from the given .env files into the process
// environment. Missing files are ignored and existing variables win.
func LoadEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// DataDir returns the ledger directory: $POCKET_DATA_DIR, then the config
// value, then $XDG_DATA_HOME/pocket or ~/.local/share/pocket.
func DataDir(cfg Config) string {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return dir
	}
	if cfg.General.DataDir != "" {
		return expandHome(cfg.General.DataDir)
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "pocket")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "pocket")
}

// Location resolves the configured timezone, with $POCKET_TIMEZONE taking
// precedence. "Local" or an empty value selects the system zone.
func Location(cfg Config) (*time.Location, error) {
	name := cfg.General.Timezone
	if env := os.Getenv(EnvTimezone); env != "" {
		name = env
	}
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", name, err)
	}
	return loc, nil
}

// LimitOverrides returns the configured budget limits as decimals.
func LimitOverrides(cfg Config) map[string]decimal.Decimal {
	if len(cfg.Budget.Limits) == 0 {
		return nil
	}
	out := make(map[string]decimal.Decimal, len(cfg.Budget.Limits))
	for k, v := range cfg.Budget.Limits {
		out[k] = decimal.NewFromFloat(v)
	}
	return out
}

// Validate reports every invalid setting in cfg.
func Validate(cfg Config) error {
	var errs []error

	switch strings.ToLower(cfg.General.DefaultSort) {
	case "date", "amount", "title", "name":
	default:
		errs = append(errs, fmt.Errorf("general.default_sort: unknown sort key %q", cfg.General.DefaultSort))
	}
	switch strings.ToLower(cfg.General.DefaultOrder) {
	case "asc", "ascending", "desc", "descending":
	default:
		errs = append(errs, fmt.Errorf("general.default_order: unknown order %q", cfg.General.DefaultOrder))
	}
	if cfg.General.DefaultDays < 0 {
		errs = append(errs, fmt.Errorf("general.default_days: must not be negative, got %d", cfg.General.DefaultDays))
	}
	if _, err := Location(cfg); err != nil {
		errs = append(errs, fmt.Errorf("general.timezone: %w", err))
	}

	categories := make([]string, 0, len(cfg.Budget.Limits))
	for k := range cfg.Budget.Limits {
		categories = append(categories, k)
	}
	sort.Strings(categories)
	for _, k := range categories {
		if cfg.Budget.Limits[k] < 0 {
			errs = append(errs, fmt.Errorf("budget.limits.%s: must not be negative", k))
		}
	}

	return errors.Join(errs...)
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
