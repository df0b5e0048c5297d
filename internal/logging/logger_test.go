package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHelpersWithoutInit(t *testing.T) {
	Close()
	// must not panic
	Info("info")
	Debug("debug", "k", 1)
	Warn("warn")
	Error("error")
}

func TestInitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "wca.log")
	if err := Init(Options{Level: "debug", File: path}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Debug("skipped timestamp", "date", "31.02.24")
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "skipped timestamp") {
		t.Errorf("log file missing message: %q", data)
	}
}

func TestInitBadLevel(t *testing.T) {
	if err := Init(Options{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
	Close()
}
