package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultMatchesDefault(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded default = %+v\nwant %+v", cfg, Default())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("embedded default is invalid: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := `
game:
  spawn4_probability: 0.25
  debug: true
storage:
  backend: sqlite
server:
  idle_timeout: 90s
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Game.Spawn4Probability != 0.25 || !cfg.Game.Debug {
		t.Errorf("game section not loaded: %+v", cfg.Game)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("Backend = %q, want sqlite", cfg.Storage.Backend)
	}
	if cfg.Server.IdleTimeout != 90*time.Second {
		t.Errorf("IdleTimeout = %v, want 90s", cfg.Server.IdleTimeout)
	}

	// Unset keys keep their defaults
	if cfg.Game.InitialTiles != 1 || cfg.Server.SSHAddr != ":23234" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("game: [not, a, map"), 0o644)
	if _, err := Load(path); err == nil {
		t.Error("malformed config should fail")
	}

	path = filepath.Join(t.TempDir(), "invalid.yaml")
	os.WriteFile(path, []byte("game:\n  spawn4_probability: 2\n"), 0o644)
	if _, err := Load(path); err == nil {
		t.Error("out of range probability should fail validation")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TUI2048_GAME_DEBUG", "true")
	t.Setenv("TUI2048_STORAGE_BACKEND", "sqlite")

	path := filepath.Join(t.TempDir(), "custom.yaml")
	os.WriteFile(path, []byte("game:\n  debug: false\n"), 0o644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !cfg.Game.Debug {
		t.Error("environment should override the file")
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("Backend = %q, want sqlite", cfg.Storage.Backend)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := ApplyEnv(&cfg, map[string]string{
		"TUI2048_GAME_SPAWN4_PROBABILITY": "0.5",
		"TUI2048_GAME_INITIAL_TILES":      "2",
		"TUI2048_LOG_LEVEL":               "debug",
		"TUI2048_SERVER_WS_ADDR":          ":9999",
		"TUI2048_SERVER_IDLE_TIMEOUT":     "5m",
		"UNRELATED":                       "x",
	})
	if err != nil {
		t.Fatalf("ApplyEnv() failed: %v", err)
	}

	if cfg.Game.Spawn4Probability != 0.5 || cfg.Game.InitialTiles != 2 {
		t.Errorf("game overrides not applied: %+v", cfg.Game)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	if cfg.Server.WSAddr != ":9999" || cfg.Server.IdleTimeout != 5*time.Minute {
		t.Errorf("server overrides not applied: %+v", cfg.Server)
	}
	if cfg.Storage != Default().Storage {
		t.Errorf("untouched section changed: %+v", cfg.Storage)
	}

	err = ApplyEnv(&cfg, map[string]string{"TUI2048_GAME_INITIAL_TILES": "many"})
	if err == nil || !strings.Contains(err.Error(), "config:") {
		t.Errorf("bad env value should fail, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"always four", func(c *Config) { c.Game.Spawn4Probability = 1 }, true},
		{"negative probability", func(c *Config) { c.Game.Spawn4Probability = -0.1 }, false},
		{"no initial tiles", func(c *Config) { c.Game.InitialTiles = 0 }, false},
		{"too many initial tiles", func(c *Config) { c.Game.InitialTiles = 17 }, false},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "redis" }, false},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, false},
		{"negative timeout", func(c *Config) { c.Server.IdleTimeout = -time.Second }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}
