package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFileDefaults(t *testing.T) {
	t.Parallel()
	home := t.TempDir()
	cfg, err := LoadFile(filepath.Join(home, "missing.toml"), home)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if want := filepath.Join(home, ".config", "wca", "history.db"); cfg.HistoryDB != want {
		t.Errorf("HistoryDB=%q want %q", cfg.HistoryDB, want)
	}
	if cfg.SessionGap() != 8*time.Hour || cfg.TopEmojis != 5 || !cfg.FixEncoding {
		t.Errorf("defaults=%+v", cfg)
	}
}

func TestLoadFileOverrides(t *testing.T) {
	t.Parallel()
	home := t.TempDir()
	path := filepath.Join(home, "config.toml")
	body := `history_db = "~/data/h.db"
session_gap_minutes = 90
fix_encoding = false
log_level = "debug"
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path, home)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if want := filepath.Join(home, "data", "h.db"); cfg.HistoryDB != want {
		t.Errorf("HistoryDB=%q want %q", cfg.HistoryDB, want)
	}
	if cfg.SessionGap() != 90*time.Minute {
		t.Errorf("SessionGap=%v", cfg.SessionGap())
	}
	if cfg.FixEncoding || cfg.LogLevel != "debug" || cfg.TopEmojis != 5 {
		t.Errorf("cfg=%+v", cfg)
	}
	if cfg.Path() != path {
		t.Errorf("Path=%q", cfg.Path())
	}
}

func TestLoadFileInvalid(t *testing.T) {
	t.Parallel()
	home := t.TempDir()
	for name, body := range map[string]string{
		"syntax": "history_db = ",
		"gap":    "session_gap_minutes = 0",
		"emojis": "top_emojis = -1",
	} {
		path := filepath.Join(home, name+".toml")
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFile(path, home); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
