// Package project handles the per-project catena.yaml configuration used
// when a whole directory is checked.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/catena-lang/catena/internal/config"
)

// Config represents the top-level catena.yaml configuration.
type Config struct {
	// Name is an optional project name used in reporting.
	Name string `yaml:"name,omitempty"`

	// Files lists the source files to check, relative to the
	// configuration file.
	Files []string `yaml:"files"`
}

// Load reads and validates the catena.yaml in dir. Paths in the returned
// config are resolved relative to dir.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, config.ProjectFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(cfg.Files) == 0 {
		return nil, fmt.Errorf("%s: no files listed", path)
	}
	for i, f := range cfg.Files {
		cfg.Files[i] = filepath.Join(dir, f)
	}
	return &cfg, nil
}
