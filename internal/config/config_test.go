package config

import (
	"testing"
	"time"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Margin != 4 {
		t.Errorf("Margin = %v, want 4", cfg.Margin)
	}
	if cfg.IdleTimeout != 10*time.Minute {
		t.Errorf("IdleTimeout = %v, want 10m", cfg.IdleTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.DBPath != "" || cfg.Seed != 0 {
		t.Errorf("unexpected values: %+v", cfg)
	}
}

func TestLoadFrom_Env(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"GUESSR_DB":           "/tmp/g.db",
		"GUESSR_CATALOG":      "/tmp/games.yaml",
		"GUESSR_MARGIN":       "6",
		"GUESSR_IDLE_TIMEOUT": "90s",
		"GUESSR_SEED":         "42",
		"GUESSR_LOG_LEVEL":    "debug",
		"GUESSR_LOG_FILE":     "/tmp/g.log",
	})
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	want := Config{
		DBPath:      "/tmp/g.db",
		CatalogPath: "/tmp/games.yaml",
		Margin:      6,
		IdleTimeout: 90 * time.Second,
		Seed:        42,
		LogLevel:    "debug",
		LogFile:     "/tmp/g.log",
	}
	if cfg != want {
		t.Errorf("cfg = %+v, want %+v", cfg, want)
	}
}

func TestLoad_ProcessEnv(t *testing.T) {
	t.Setenv("GUESSR_SEED", "7")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != 7 {
		t.Errorf("Seed = %d, want 7", cfg.Seed)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"negative margin": {"GUESSR_MARGIN": "-1"},
		"zero timeout":    {"GUESSR_IDLE_TIMEOUT": "0s"},
		"not a number":    {"GUESSR_SEED": "many"},
		"bad duration":    {"GUESSR_IDLE_TIMEOUT": "soon"},
	}
	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFrom(vars); err == nil {
				t.Error("expected error")
			}
		})
	}
}
