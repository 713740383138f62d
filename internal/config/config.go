// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/abhisek/wardtrain/internal/progress"
	"github.com/abhisek/wardtrain/internal/store"
)

// Config holds settings read from WARDTRAIN_* variables. Command-line flags
// override these after Load returns.
type Config struct {
	DBPath      string   `env:"WARDTRAIN_DB"`
	DataHome    string   `env:"XDG_DATA_HOME"`
	ProgressKey string   `env:"WARDTRAIN_PROGRESS_KEY" envDefault:"medical-training-progress"`
	Banks       []string `env:"WARDTRAIN_BANKS" envSeparator:","`
	LogPath     string   `env:"WARDTRAIN_LOG"`
	Ephemeral   bool     `env:"WARDTRAIN_EPHEMERAL"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.ProgressKey == "" {
		cfg.ProgressKey = progress.DefaultKey
	}
	return cfg, nil
}

// ResolveDBPath returns the database file path, creating its directory.
func (c Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		if err := store.EnsureDir(c.DBPath); err != nil {
			return "", fmt.Errorf("create db dir: %w", err)
		}
		return c.DBPath, nil
	}
	return store.DefaultDBPath(c.DataHome)
}

// ResolveLogPath returns the log file path. It defaults to wardtrain.log in
// the data directory.
func (c Config) ResolveLogPath() (string, error) {
	if c.LogPath != "" {
		return c.LogPath, nil
	}
	dir, err := store.DataDir(c.DataHome)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "wardtrain.log"), nil
}

// OpenLogger opens the log file for appending and returns a logger writing
// to it. The caller closes the returned io.Closer.
func (c Config) OpenLogger() (*log.Logger, io.Closer, error) {
	p, err := c.ResolveLogPath()
	if err != nil {
		return nil, nil, err
	}
	if err := store.EnsureDir(p); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return log.New(f, "wardtrain ", log.LstdFlags), f, nil
}
