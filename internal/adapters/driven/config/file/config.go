// Package file provides the TOML configuration file for ordermatch.
// Configuration lives in ~/.ordermatch/config.toml; command-line flags
// override file values.
package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Defaults.
const (
	DefaultAPIURL      = "http://localhost:8000"
	DefaultOrderID     = "current_order"
	DefaultSearchLimit = 10
)

// Config is the persisted application configuration.
type Config struct {
	// APIURL is the order-processing backend base URL.
	APIURL string `toml:"api_url"`

	// OrderID keys the remote draft and final records. The design assumes
	// a single active session per order identifier.
	OrderID string `toml:"order_id"`

	// DataDir holds the local draft cache. Empty means ~/.ordermatch/data.
	DataDir string `toml:"data_dir"`

	// SearchLimit caps interactive catalog search results.
	SearchLimit int `toml:"search_limit"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		APIURL:      DefaultAPIURL,
		OrderID:     DefaultOrderID,
		SearchLimit: DefaultSearchLimit,
	}
}

// configPath resolves the config file location.
func configPath(configDir string) (string, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".ordermatch")
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// Load reads the config file, applying defaults for anything unset.
// A missing file yields the defaults without error.
func Load(configDir string) (Config, error) {
	cfg := DefaultConfig()

	path, err := configPath(configDir)
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.OrderID == "" {
		cfg.OrderID = DefaultOrderID
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = DefaultSearchLimit
	}
	return cfg, nil
}

// Save writes the config file, creating the directory if needed.
func Save(configDir string, cfg Config) error {
	path, err := configPath(configDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
