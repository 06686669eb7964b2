// Package config loads PXNote configuration from an optional YAML file
// plus environment overrides.
//
// Secrets policy: the database DSN comes from the environment or the
// config file, never from source text, and no error message or log line
// ever echoes its value.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/pxnote/pkg/core"
)

// Environment variables recognized as overrides.
const (
	EnvAddr    = "PXNOTE_ADDR"
	EnvDataDir = "PXNOTE_DATA_DIR"
	EnvDB      = "PXNOTE_DB"
)

// Config holds the runtime settings for both backends.
type Config struct {
	// Addr is the HTTP listen address for `pxnote serve`.
	Addr string `yaml:"addr"`

	// DataDir is the local vault directory holding the per-category
	// JSON collections.
	DataDir string `yaml:"data_dir"`

	// DB is the document store DSN. Required by `pxnote serve`.
	DB string `yaml:"db"`
}

// Default returns the built-in settings.
func Default() Config {
	dataDir := "data"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".pxnote")
	}
	return Config{
		Addr:    ":8080",
		DataDir: dataDir,
	}
}

// Load resolves the effective configuration: defaults, then the YAML file
// (when path is non-empty or the default file exists), then environment
// overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = defaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist) && !explicit:
			// No config file is fine; defaults and env carry it.
		case err != nil:
			return Config{}, fmt.Errorf("%w: cannot read config file %s: %v", core.ErrInvalidConfig, path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("%w: malformed config file %s: %v", core.ErrInvalidConfig, path, err)
			}
		}
	}

	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv(EnvDB); v != "" {
		cfg.DB = v
	}
	return cfg, nil
}

func defaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pxnote", "config.yaml")
}

// ValidateServe checks the settings `pxnote serve` cannot run without.
// Fatal before any request is served. The DSN value is deliberately
// absent from the message.
func (c Config) ValidateServe() error {
	if c.DB == "" {
		return fmt.Errorf("%w: database DSN is not set (set %s or `db` in the config file)", core.ErrInvalidConfig, EnvDB)
	}
	if c.Addr == "" {
		return fmt.Errorf("%w: listen address is empty", core.ErrInvalidConfig)
	}
	return nil
}
