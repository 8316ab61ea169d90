package config

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Mode != "" {
		t.Errorf("expected no mode so the saved one is kept, got %s", cfg.Mode)
	}
	if cfg.History.DatabasePath != "" {
		t.Errorf("expected no database by default, got %s", cfg.History.DatabasePath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("CALC_DB", "")
	t.Setenv("CALC_MODE", "")

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Mode = "scientific"
	cfg.History.DatabasePath = "/tmp/calc.db"
	cfg.History.Limit = 10
	cfg.Logging.Level = "debug"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("expected %+v, got %+v", *cfg, *loaded)
	}
	lvl, err := loaded.LogLevel()
	if err != nil || lvl != zapcore.DebugLevel {
		t.Errorf("expected debug level, got %v (%v)", lvl, err)
	}
}

func TestConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("CALC_DB", "")
	t.Setenv("CALC_MODE", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("expected defaults, got %+v", *cfg)
	}
}

func TestConfig_PartialFileKeepsDefaults(t *testing.T) {
	t.Setenv("CALC_DB", "")
	t.Setenv("CALC_MODE", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("history:\n  database_path: h.db\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.History.DatabasePath != "h.db" {
		t.Errorf("expected h.db, got %s", cfg.History.DatabasePath)
	}
	if cfg.History.Limit != 50 || cfg.Mode != "" {
		t.Errorf("expected defaults for unset keys, got %+v", *cfg)
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CALC_DB", "/var/lib/calc.db")
	t.Setenv("CALC_MODE", "scientific")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.History.DatabasePath != "/var/lib/calc.db" {
		t.Errorf("expected env database path, got %s", cfg.History.DatabasePath)
	}
	if cfg.Mode != "scientific" {
		t.Errorf("expected env mode, got %s", cfg.Mode)
	}
}

func TestConfig_ModeSpellings(t *testing.T) {
	for _, mode := range []string{"", "basic", "scientific", "sci"} {
		cfg := DefaultConfig()
		cfg.Mode = mode
		if err := cfg.Validate(); err != nil {
			t.Errorf("mode %q: unexpected error: %v", mode, err)
		}
	}
}

func TestConfig_Invalid(t *testing.T) {
	t.Setenv("CALC_DB", "")
	t.Setenv("CALC_MODE", "")

	tests := map[string]string{
		"mode":  "mode: graphing\n",
		"level": "logging:\n  level: loud\n",
		"limit": "history:\n  limit: -1\n",
		"yaml":  "mode: [\n",
	}
	for name, body := range tests {
		path := filepath.Join(t.TempDir(), name+".yaml")
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
