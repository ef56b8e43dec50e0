package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.DefaultSort != "date" {
		t.Errorf("DefaultSort = %q, want date", cfg.General.DefaultSort)
	}
	if Exists() {
		t.Error("Exists() = true, want false")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.DefaultSort = "amount"
	cfg.General.DefaultDays = 7
	cfg.General.Timezone = "UTC"
	cfg.Budget.Limits = map[string]float64{"Shopping": 450}
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(ConfigPath())
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config mode = %o, want 600", perm)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.General.DefaultSort != "amount" || got.General.DefaultDays != 7 {
		t.Errorf("General = %+v, want amount/7", got.General)
	}
	if got.Budget.Limits["Shopping"] != 450 {
		t.Errorf("Limits[Shopping] = %v, want 450", got.Budget.Limits["Shopping"])
	}
	if lim := LimitOverrides(got)["Shopping"]; lim.String() != "450" {
		t.Errorf("LimitOverrides[Shopping] = %s, want 450", lim)
	}
}

func TestLoad_ParseError(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, "pocket"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ConfigPath(), []byte("[general\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "parsing config") {
		t.Fatalf("Load err = %v, want parsing config error", err)
	}
}

func TestDataDir_Precedence(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg")
	t.Setenv(EnvDataDir, "")

	cfg := DefaultConfig()
	if got := DataDir(cfg); got != filepath.Join("/xdg", "pocket") {
		t.Errorf("DataDir = %q, want /xdg/pocket", got)
	}

	cfg.General.DataDir = "/ledgers"
	if got := DataDir(cfg); got != "/ledgers" {
		t.Errorf("DataDir = %q, want /ledgers", got)
	}

	t.Setenv(EnvDataDir, "/env")
	if got := DataDir(cfg); got != "/env" {
		t.Errorf("DataDir = %q, want /env", got)
	}
}

func TestLocation(t *testing.T) {
	t.Setenv(EnvTimezone, "")
	cfg := DefaultConfig()

	loc, err := Location(cfg)
	if err != nil || loc != time.Local {
		t.Errorf("Location(Local) = %v, %v, want time.Local", loc, err)
	}

	cfg.General.Timezone = "UTC"
	loc, err = Location(cfg)
	if err != nil || loc.String() != "UTC" {
		t.Errorf("Location(UTC) = %v, %v", loc, err)
	}

	cfg.General.Timezone = "Mars/Olympus"
	if _, err := Location(cfg); err == nil {
		t.Error("Location(Mars/Olympus) = nil error, want failure")
	}
}

func TestValidate(t *testing.T) {
	t.Setenv(EnvTimezone, "")
	if err := Validate(DefaultConfig()); err != nil {
		t.Errorf("Validate(default) = %v, want nil", err)
	}

	cfg := DefaultConfig()
	cfg.General.DefaultSort = "merchant"
	cfg.General.DefaultOrder = "up"
	cfg.General.DefaultDays = -1
	cfg.Budget.Limits = map[string]float64{"Food": -5}

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Validate = nil, want errors")
	}
	for _, want := range []string{"default_sort", "default_order", "default_days", "budget.limits.Food"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate error %q missing %q", err, want)
		}
	}
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("POCKET_TEST_VALUE=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("POCKET_TEST_VALUE") })

	if err := LoadEnv(filepath.Join(t.TempDir(), "missing.env"), path); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if got := os.Getenv("POCKET_TEST_VALUE"); got != "from-file" {
		t.Errorf("POCKET_TEST_VALUE = %q, want from-file", got)
	}
}
