package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

// writeUserLabConfig writes cfg directly to <userConfigDir>/lab.yaml,
// the path LoadLabConfig reads for the user-level file (distinct from
// SaveLabConfig, which always targets a project's .axlab directory).
func writeUserLabConfig(userConfigDir string, cfg LabConfig) error {
	if err := os.MkdirAll(userConfigDir, 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(userConfigDir, "lab.yaml"), data, 0o644)
}

func TestLoadLabConfigDefaultsWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadLabConfig(filepath.Join(dir, "user"), filepath.Join(dir, "project"))
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultLabConfig()
	if cfg != want {
		t.Fatalf("expected default config, got %+v", cfg)
	}
}

func TestSaveAndLoadLabConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	projectDir := filepath.Join(dir, "project")

	cfg := DefaultLabConfig()
	cfg.Workers = 4
	cfg.Battery.MaxModelSize = 5
	if err := SaveLabConfig(projectDir, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadLabConfig(filepath.Join(dir, "user"), projectDir)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Workers != 4 {
		t.Errorf("workers = %d, want 4", loaded.Workers)
	}
	if loaded.Battery.MaxModelSize != 5 {
		t.Errorf("max_model_size = %d, want 5", loaded.Battery.MaxModelSize)
	}
}

func TestProjectConfigOverridesUserConfig(t *testing.T) {
	dir := t.TempDir()
	userDir := filepath.Join(dir, "user")
	projectDir := filepath.Join(dir, "project")

	userCfg := DefaultLabConfig()
	userCfg.Workers = 2
	userCfg.LogLevel = "debug"
	if err := writeUserLabConfig(userDir, userCfg); err != nil {
		t.Fatal(err)
	}

	// The project file sets only workers, so every other key must come
	// from the user file.
	projectLabDir := filepath.Join(projectDir, ".axlab")
	if err := os.MkdirAll(projectLabDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(projectLabDir, "lab.yaml"), []byte("workers: 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadLabConfig(userDir, projectDir)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Workers != 8 {
		t.Errorf("expected project override to win, workers = %d, want 8", loaded.Workers)
	}
	if loaded.LogLevel != "debug" {
		t.Errorf("expected user log_level to survive, got %q", loaded.LogLevel)
	}
}

func TestStorePathResolvesRelativeToProjectDir(t *testing.T) {
	cfg := DefaultLabConfig()
	cfg.StoreDir = "store"
	got := cfg.StorePath("/tmp/project")
	if got != filepath.Join("/tmp/project", "store") {
		t.Errorf("StorePath = %q", got)
	}

	cfg.StoreDir = "/abs/store"
	if got := cfg.StorePath("/tmp/project"); got != "/abs/store" {
		t.Errorf("StorePath with absolute dir = %q", got)
	}
}
