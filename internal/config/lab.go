package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ehrlich-b/axlab/internal/battery"
)

// LabConfig is the on-disk lab.yaml schema: default battery budgets, the
// ArtifactStore location, worker pool size, and logging.
type LabConfig struct {
	StoreDir string `yaml:"store_dir"`
	Workers  int    `yaml:"workers"`
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	Battery battery.Config `yaml:"battery"`
}

// DefaultLabConfig mirrors battery.DefaultConfig for the battery section
// and picks conservative ambient defaults for everything else.
func DefaultLabConfig() LabConfig {
	return LabConfig{
		StoreDir: "store",
		Workers:  0,
		LogLevel: "info",
		LogFile:  "",
		Battery:  battery.DefaultConfig(),
	}
}

// LoadLabConfig reads lab.yaml from the project directory first
// (<projectDir>/.axlab/lab.yaml), falling back to the user directory
// (<userConfigDir>/lab.yaml), and finally to DefaultLabConfig if neither
// exists. Values present in the project file win over the user file;
// an absent file is not an error.
func LoadLabConfig(userConfigDir, projectDir string) (LabConfig, error) {
	cfg := DefaultLabConfig()

	userPath := filepath.Join(userConfigDir, "lab.yaml")
	if err := mergeLabConfigFile(&cfg, userPath); err != nil {
		return LabConfig{}, err
	}

	projectPath := filepath.Join(projectDir, ".axlab", "lab.yaml")
	if err := mergeLabConfigFile(&cfg, projectPath); err != nil {
		return LabConfig{}, err
	}

	return cfg, nil
}

func mergeLabConfigFile(cfg *LabConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// SaveLabConfig writes cfg as YAML to <projectDir>/.axlab/lab.yaml,
// creating the directory if needed.
func SaveLabConfig(projectDir string, cfg LabConfig) error {
	dir := filepath.Join(projectDir, ".axlab")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "lab.yaml"), data, 0o644)
}

// StorePath resolves the configured store directory to an absolute
// path rooted at projectDir when it isn't already absolute.
func (c LabConfig) StorePath(projectDir string) string {
	if filepath.IsAbs(c.StoreDir) {
		return c.StoreDir
	}
	return filepath.Join(projectDir, c.StoreDir)
}
