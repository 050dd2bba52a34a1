// internal/config/config.go
//
// This package handles configuration and the .market directory structure.
// Every project directory the app runs from gets a .market/ folder holding
// durable state, logs, and the project config.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// MarketDir is the name of the directory created in the working dir.
	MarketDir = ".market"

	// EnvMapURL supplies a one-time map URL that outranks the stored
	// preference for this session only.
	EnvMapURL = "MARKET_MAP_URL"

	defaultCatalogFile = "catalog.yaml"
	defaultMapURL      = "https://transcendent-crisp-6ebea8.netlify.app/"
)

const defaultProjectConfigYAML = `# market project configuration
version: 1

catalog:
  # Store records; falls back to the built-in demo catalog when absent.
  path: catalog.yaml

map:
  # Built-in market map. Shoppers can override it from the map screen.
  default_url: https://transcendent-crisp-6ebea8.netlify.app/
`

// CatalogConfig points at the raw store records.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// MapConfig holds the map screen defaults.
type MapConfig struct {
	DefaultURL string `yaml:"default_url"`
}

// ProjectConfig models .market/config.yaml.
type ProjectConfig struct {
	Version int           `yaml:"version"`
	Catalog CatalogConfig `yaml:"catalog"`
	Map     MapConfig     `yaml:"map"`
}

// Config holds the runtime configuration.
type Config struct {
	// ProjectDir is the directory the app was launched from.
	ProjectDir string

	// MarketProjectDir is ProjectDir/.market.
	MarketProjectDir string

	// MapURLOverride is the session-only map URL from EnvMapURL, if any.
	MapURLOverride string

	Project ProjectConfig
}

// InitMarketDir creates the .market directory structure:
//
// .market/
// ├── state/  <- one JSON file per persisted collection
// └── logs/   <- session journal
func InitMarketDir(projectDir string) error {
	marketDir := filepath.Join(projectDir, MarketDir)
	dirs := []string{
		filepath.Join(marketDir, "state"),
		filepath.Join(marketDir, "logs"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return ensureProjectConfig(filepath.Join(marketDir, "config.yaml"))
}

// NewConfig creates a Config populated with project settings.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:       projectDir,
		MarketProjectDir: filepath.Join(projectDir, MarketDir),
		MapURLOverride:   strings.TrimSpace(os.Getenv(EnvMapURL)),
		Project:          defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// StateDir returns the directory backing the persistence gateway.
func (c *Config) StateDir() string {
	return filepath.Join(c.MarketProjectDir, "state")
}

// LogsDir returns the journal directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.MarketProjectDir, "logs")
}

// JournalPath returns the session journal file.
func (c *Config) JournalPath() string {
	return filepath.Join(c.LogsDir(), "session.log")
}

// CatalogPath resolves the catalog file relative to the project dir.
func (c *Config) CatalogPath() string {
	p := c.Project.Catalog.Path
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.ProjectDir, p)
}

// DefaultMapURL returns the configured fallback map URL.
func (c *Config) DefaultMapURL() string {
	return c.Project.Map.DefaultURL
}

// ProjectConfigPath returns the on-disk location of the project config.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.MarketProjectDir, "config.yaml")
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Catalog: CatalogConfig{Path: defaultCatalogFile},
		Map:     MapConfig{DefaultURL: defaultMapURL},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.Catalog.Path) == "" {
		pc.Catalog.Path = defaultCatalogFile
	}
	if strings.TrimSpace(pc.Map.DefaultURL) == "" {
		pc.Map.DefaultURL = defaultMapURL
	}
}

func (pc *ProjectConfig) normalize() {
	pc.Catalog.Path = strings.TrimSpace(pc.Catalog.Path)
	pc.Map.DefaultURL = strings.TrimSpace(pc.Map.DefaultURL)
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if !strings.HasPrefix(pc.Map.DefaultURL, "http://") && !strings.HasPrefix(pc.Map.DefaultURL, "https://") {
		return fmt.Errorf("map.default_url must be an absolute http(s) URL")
	}
	return nil
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}
