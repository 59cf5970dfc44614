// Package config loads the optional lifequest YAML config file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// DBPath overrides the default database location. The LIFEQUEST_DB
	// environment variable wins over both.
	DBPath string `yaml:"db_path"`

	// BaseXP is the quest reward before the difficulty multiplier.
	BaseXP int `yaml:"base_xp"`

	// HabitXP is the default per-completion reward for new habits.
	HabitXP int `yaml:"habit_xp"`
}

func Default() Config {
	return Config{
		BaseXP:  10,
		HabitXP: 10,
	}
}

// DefaultPath returns ~/.config/lifequest/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return filepath.Join(dir, "lifequest", "config.yaml"), nil
}

// Load reads the config at path, falling back to defaults for missing
// fields. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.BaseXP < 1 {
		cfg.BaseXP = Default().BaseXP
	}
	if cfg.HabitXP < 1 {
		cfg.HabitXP = Default().HabitXP
	}
	return cfg, nil
}
