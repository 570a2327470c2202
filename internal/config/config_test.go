package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
)

// =============================================================================
// UNIFIED CONFIG TESTS
// =============================================================================

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Name != "sajumatch" {
		t.Errorf("expected Name=sajumatch, got %s", cfg.Name)
	}
	if cfg.Graph.Workers != 4 {
		t.Errorf("expected Workers=4, got %d", cfg.Graph.Workers)
	}
	if cfg.Output.Format != OutputText {
		t.Errorf("expected Output.Format=text, got %s", cfg.Output.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	// Ensure no env vars interfere
	t.Setenv("SAJUMATCH_ROOMS_DIR", "")
	t.Setenv("SAJUMATCH_OUTPUT", "")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "sajumatch.yaml")

	cfg := DefaultConfig()
	cfg.Rooms.Dir = "/srv/rooms"
	cfg.Graph.Workers = 8
	cfg.Output.Format = OutputJSON

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Rooms.Dir != "/srv/rooms" {
		t.Errorf("expected Rooms.Dir=/srv/rooms, got %s", loaded.Rooms.Dir)
	}
	if loaded.Graph.Workers != 8 {
		t.Errorf("expected Workers=8, got %d", loaded.Graph.Workers)
	}
	if !loaded.Output.IsJSON() {
		t.Errorf("expected json output, got %s", loaded.Output.Format)
	}
}

func TestConfig_LoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("SAJUMATCH_ROOMS_DIR", "")
	loaded, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Rooms.Dir != DefaultConfig().Rooms.Dir {
		t.Errorf("expected default rooms dir, got %s", loaded.Rooms.Dir)
	}
}

func TestConfig_LoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sajumatch.yaml")
	if err := os.WriteFile(path, []byte("graph:\n  workers: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Graph.Workers != 2 {
		t.Errorf("expected Workers=2, got %d", loaded.Graph.Workers)
	}
	if loaded.Rooms.MaxParticipants != 20 {
		t.Errorf("expected default MaxParticipants=20, got %d", loaded.Rooms.MaxParticipants)
	}
}

func TestConfig_LoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("graph: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestConfig_Validate(t *testing.T) {
	cases := map[string]func(*Config){
		"bad level":      func(c *Config) { c.Logging.Level = "chatty" },
		"bad format":     func(c *Config) { c.Logging.Format = "xml" },
		"no rooms dir":   func(c *Config) { c.Rooms.Dir = "" },
		"bad backend":    func(c *Config) { c.Rooms.Backend = "postgres" },
		"negative cap":   func(c *Config) { c.Rooms.MaxParticipants = -1 },
		"zero workers":   func(c *Config) { c.Graph.Workers = 0 },
		"too many":       func(c *Config) { c.Graph.Workers = MaxGraphWorkers + 1 },
		"bad output fmt": func(c *Config) { c.Output.Format = "yaml" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestConfig_GetGraphTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Graph.Timeout = "250ms"
	if got := cfg.GetGraphTimeout(); got != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", got)
	}
	cfg.Graph.Timeout = "soon"
	if got := cfg.GetGraphTimeout(); got != 10*time.Second {
		t.Errorf("expected fallback 10s, got %v", got)
	}
}

func TestLoggingConfig_ZapConfig(t *testing.T) {
	lc := LoggingConfig{Level: "warn", Format: "json"}
	if got := lc.ZapConfig(false).Level.Level(); got != zapcore.WarnLevel {
		t.Errorf("expected warn level, got %v", got)
	}
	if got := lc.ZapConfig(true).Level.Level(); got != zapcore.DebugLevel {
		t.Errorf("verbose should force debug, got %v", got)
	}

	lc.File = "sajumatch.log"
	paths := lc.ZapConfig(false).OutputPaths
	if len(paths) != 2 || paths[1] != "sajumatch.log" {
		t.Errorf("expected stderr plus file sink, got %v", paths)
	}
}
