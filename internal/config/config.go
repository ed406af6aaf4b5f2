// Package config loads settings from defaults, an optional YAML file, a .env
// file and PORTFOLIO_* environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// Config holds every setting of the server and the CLI.
type Config struct {
	Port         string `koanf:"port"`
	TemplatesDir string `koanf:"templates_dir"`
	ShellPath    string `koanf:"shell_path"`
	StaticDir    string `koanf:"static_dir"`
	ImagesDir    string `koanf:"images_dir"`
	DataFile     string `koanf:"data_file"`

	Store         string `koanf:"store"`
	SQLitePath    string `koanf:"sqlite_path"`
	RevisionsKept int    `koanf:"revisions_kept"`

	// Remote endpoints used by the render and save commands.
	APIURL    string `koanf:"api_url"`
	StaticURL string `koanf:"static_url"`

	AdminUsername string `koanf:"admin_username"`
	AdminPassword string `koanf:"admin_password"`
	AdminSecret   string `koanf:"admin_secret"`
	AdminToken    string `koanf:"admin_token"`

	TypewriterInterval time.Duration `koanf:"typewriter_interval"`
	Minify             bool          `koanf:"minify"`
}

// Default returns development settings.
func Default() *Config {
	return &Config{
		Port:               "8080",
		TemplatesDir:       "templates",
		ShellPath:          "web/index.html",
		StaticDir:          "static",
		ImagesDir:          "images",
		DataFile:           "data/content.json",
		Store:              StoreFile,
		SQLitePath:         "data/content.db",
		RevisionsKept:      50,
		APIURL:             "http://localhost:8080/api/content",
		StaticURL:          "http://localhost:8080/data/content.json",
		AdminUsername:      "admin",
		AdminPassword:      "admin123",
		TypewriterInterval: 80 * time.Millisecond,
		Minify:             true,
	}
}

// Load builds the configuration. A missing file at path is not an error.
func Load(path string) (*Config, error) {
	// .env is optional, as in development.
	_ = godotenv.Load()

	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("PORTFOLIO_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "PORTFOLIO_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Variables the site has always read.
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("ADMIN_USERNAME"); v != "" {
		cfg.AdminUsername = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		cfg.AdminPassword = v
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if c.Store != StoreFile && c.Store != StoreSQLite {
		return fmt.Errorf("invalid store %q: must be file or sqlite", c.Store)
	}
	if c.Store == StoreSQLite && c.SQLitePath == "" {
		return fmt.Errorf("sqlite_path is required for the sqlite store")
	}
	if c.DataFile == "" {
		return fmt.Errorf("data_file is required")
	}
	if c.RevisionsKept < 0 {
		return fmt.Errorf("revisions_kept must be non-negative")
	}
	if c.TypewriterInterval <= 0 {
		return fmt.Errorf("typewriter_interval must be positive")
	}
	return nil
}
