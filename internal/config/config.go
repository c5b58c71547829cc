// Package config loads the CLI configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formcodec/pkg/attachments"
)

// Config mirrors formcodec.yaml:
//
//	org: ttd
//	libraryIds: [countries, fruits]
//	currentTask: Task_1
//	catalog: ./catalog
//	format: text
//	logLevel: info
//	tasks:
//	  - id: Task_1
//	    dataTypes: [invoice, receipt]
type Config struct {
	Org         string             `yaml:"org"`
	LibraryIDs  []string           `yaml:"libraryIds"`
	CurrentTask string             `yaml:"currentTask"`
	Catalog     string             `yaml:"catalog"`
	Format      string             `yaml:"format"`
	LogLevel    string             `yaml:"logLevel"`
	Tasks       []attachments.Task `yaml:"tasks"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{Format: "text", LogLevel: "info"}
}

// Load reads path and overlays it on Default. Relative catalog paths resolve
// against the file's directory. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.Catalog != "" && !filepath.IsAbs(cfg.Catalog) {
		cfg.Catalog = filepath.Join(filepath.Dir(path), cfg.Catalog)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks task ids are present and unique and that currentTask,
// when set alongside tasks, names one of them.
func (c Config) Validate() error {
	seen := make(map[string]struct{}, len(c.Tasks))
	for idx, task := range c.Tasks {
		id := strings.TrimSpace(task.ID)
		if id == "" {
			return fmt.Errorf("tasks[%d]: id is required", idx)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("tasks[%d]: duplicate id %q", idx, id)
		}
		seen[id] = struct{}{}
	}
	if c.CurrentTask != "" && len(c.Tasks) > 0 {
		if _, ok := seen[c.CurrentTask]; !ok {
			return errors.New("currentTask is not listed in tasks")
		}
	}
	return nil
}
