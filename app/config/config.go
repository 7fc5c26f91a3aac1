// Package config describes the PontusBot configuration: the core Telegram and
// logging settings plus the catalog, database and branding sections.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/joho/godotenv"

	"github.com/m3rciful/pontusbot/app/catalog"
	"github.com/m3rciful/pontusbot/app/menu"
	coreconfig "github.com/m3rciful/pontusbot/core/config"
	coredatabase "github.com/m3rciful/pontusbot/core/database"
)

// Catalog drivers.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// CatalogConfig selects where the catalog is read from and how files are delivered.
type CatalogConfig struct {
	Path     string    `yaml:"path" envconfig:"CATALOG_PATH"`
	Driver   string    `yaml:"driver" envconfig:"CATALOG_DRIVER"`
	Delivery menu.Mode `yaml:"delivery" envconfig:"CATALOG_DELIVERY"`
}

// Config is the full application configuration.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Catalog  CatalogConfig       `yaml:"catalog"`
	Database coredatabase.Config `yaml:"database"`
	Branding menu.Branding       `yaml:"branding"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	if c == nil {
		return nil
	}
	return &c.Config
}

// UsesDatabase reports whether the catalog is served from PostgreSQL.
func (c *Config) UsesDatabase() bool {
	return c != nil && c.Catalog.Driver == DriverPostgres
}

// Load reads path (optional) and the environment, then validates everything
// the bot needs to run.
func Load(path string) (*Config, error) {
	cfg, err := LoadOffline(path)
	if err != nil {
		return nil, err
	}
	if err := coreconfig.Normalize(&cfg.Config); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOffline is Load without the Telegram checks, for commands that never
// contact Telegram such as catalog validation and migrations.
func LoadOffline(path string) (*Config, error) {
	var cfg Config
	if err := coreconfig.Decode(path, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	c.Catalog.Path = strings.TrimSpace(c.Catalog.Path)
	if c.Catalog.Path == "" {
		c.Catalog.Path = catalog.DefaultPath
	}

	c.Catalog.Driver = strings.ToLower(strings.TrimSpace(c.Catalog.Driver))
	switch c.Catalog.Driver {
	case "":
		c.Catalog.Driver = DriverFile
	case DriverFile, DriverPostgres:
	default:
		return fmt.Errorf("invalid catalog.driver %q; allowed: %s, %s", c.Catalog.Driver, DriverFile, DriverPostgres)
	}

	c.Catalog.Delivery = menu.Mode(strings.ToLower(strings.TrimSpace(string(c.Catalog.Delivery))))
	if c.Catalog.Delivery == "" {
		c.Catalog.Delivery = menu.ModeLink
	}
	if !c.Catalog.Delivery.Valid() {
		return fmt.Errorf("invalid catalog.delivery %q; allowed: %s, %s", c.Catalog.Delivery, menu.ModeLink, menu.ModeDocument)
	}

	if c.UsesDatabase() {
		if err := c.Database.Normalize(); err != nil {
			return err
		}
	}
	c.Branding = c.Branding.WithDefaults()
	return nil
}

// LoadDotEnv loads variables from a .env file into the process environment
// without overriding variables that are already set. A missing file is fine.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	log.Printf("loaded environment from %s", path)
	return nil
}
