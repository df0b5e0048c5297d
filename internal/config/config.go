package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	HistoryDB         string `toml:"history_db"`
	ExportDir         string `toml:"export_dir"`
	LogLevel          string `toml:"log_level"`
	LogFile           string `toml:"log_file"`
	FixEncoding       bool   `toml:"fix_encoding"`
	SessionGapMinutes int    `toml:"session_gap_minutes"`
	TopEmojis         int    `toml:"top_emojis"`

	path string
}

// Load reads ~/.config/wca/config.toml over the defaults. A missing file is
// not an error.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return LoadFile(filepath.Join(home, ".config", "wca", "config.toml"), home)
}

// LoadFile is Load with an explicit config path and home directory.
func LoadFile(cfgPath, home string) (*Config, error) {
	cfg := &Config{
		HistoryDB:         filepath.Join(home, ".config", "wca", "history.db"),
		ExportDir:         ".",
		LogLevel:          "warn",
		FixEncoding:       true,
		SessionGapMinutes: 8 * 60,
		TopEmojis:         5,
		path:              cfgPath,
	}

	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	// expand ~ in paths
	cfg.HistoryDB = expandHome(cfg.HistoryDB, home)
	cfg.ExportDir = expandHome(cfg.ExportDir, home)
	cfg.LogFile = expandHome(cfg.LogFile, home)

	if cfg.SessionGapMinutes <= 0 {
		return nil, fmt.Errorf("config %s: session_gap_minutes must be positive, got %d", cfgPath, cfg.SessionGapMinutes)
	}
	if cfg.TopEmojis <= 0 {
		return nil, fmt.Errorf("config %s: top_emojis must be positive, got %d", cfgPath, cfg.TopEmojis)
	}
	return cfg, nil
}

// Path is the config file location, whether or not it exists.
func (c *Config) Path() string { return c.path }

func (c *Config) SessionGap() time.Duration {
	return time.Duration(c.SessionGapMinutes) * time.Minute
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
