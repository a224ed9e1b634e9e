package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/tada/internal/filter"
	"github.com/idilsaglam/tada/internal/model"
)

const (
	StorageJSON   = "json"
	StorageSQLite = "sqlite"

	DefaultNamespace = "tada_items_v1"
)

// Config holds settings stored at ~/.tada/config.yaml.
type Config struct {
	Storage    string   `yaml:"storage"`
	DataDir    string   `yaml:"data_dir"`
	Namespace  string   `yaml:"namespace"`
	Categories []string `yaml:"categories"`
	Theme      string   `yaml:"theme"`
	LogLevel   string   `yaml:"log_level"`
}

// Dir is the tada home directory. TADA_HOME overrides ~/.tada.
func Dir() string {
	if d := strings.TrimSpace(os.Getenv("TADA_HOME")); d != "" {
		return d
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".tada")
}

// Path returns the default config file path.
func Path() string { return filepath.Join(Dir(), "config.yaml") }

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		Storage:    StorageJSON,
		DataDir:    Dir(),
		Namespace:  DefaultNamespace,
		Categories: append([]string(nil), model.DefaultCategories...),
		Theme:      "classic",
		LogLevel:   "info",
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) fillDefaults() {
	d := Default()
	if c.Storage == "" {
		c.Storage = d.Storage
	}
	if c.DataDir == "" {
		c.DataDir = d.DataDir
	}
	if c.Namespace == "" {
		c.Namespace = d.Namespace
	}
	if len(c.Categories) == 0 {
		c.Categories = d.Categories
	}
	if c.Theme == "" {
		c.Theme = d.Theme
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
}

// Validate checks values that would break the store or the entry form.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageJSON, StorageSQLite:
	default:
		return fmt.Errorf("config: unknown storage %q (want %s or %s)", c.Storage, StorageJSON, StorageSQLite)
	}
	if strings.ContainsAny(c.Namespace, `/\`) {
		return fmt.Errorf("config: namespace %q must not contain path separators", c.Namespace)
	}
	seen := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		switch {
		case strings.TrimSpace(cat) == "":
			return errors.New("config: empty category")
		case cat == filter.All:
			return fmt.Errorf("config: category %q is reserved", cat)
		case seen[cat]:
			return fmt.Errorf("config: duplicate category %q", cat)
		}
		seen[cat] = true
	}
	return nil
}

// Save writes the config to path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// DBPath is where the sqlite backend keeps its database.
func (c *Config) DBPath() string { return filepath.Join(c.DataDir, "tada.db") }

// LogPath is where the file logger writes.
func (c *Config) LogPath() string { return filepath.Join(c.DataDir, "tada.log") }
