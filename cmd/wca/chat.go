package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/analyze"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/load"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/logging"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
	"golang.org/x/term"
)

// readChat loads and parses an export, repairing its encoding when enabled.
func readChat(path string) ([]parse.ChatMessage, error) {
	raw, err := load.Load(path)
	if err != nil {
		return nil, err
	}
	if cfg.FixEncoding {
		raw = load.FixEncoding(raw)
	}
	msgs := parse.Parse(raw)
	logging.Info("parsed export", "path", path, "messages", len(msgs))
	return msgs, nil
}

func analyzeFile(path string) (*analyze.ChatStats, error) {
	msgs, err := readChat(path)
	if err != nil {
		return nil, err
	}
	opts := analyze.DefaultOptions()
	opts.SessionGap = cfg.SessionGap()
	opts.TopEmojis = cfg.TopEmojis
	stats, err := analyze.Analyze(msgs, opts)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", path, err)
	}
	return stats, nil
}

// chatTitle derives a title from an export name such as
// "WhatsApp Chat with Ayşe.txt".
func chatTitle(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	base = strings.TrimPrefix(base, "WhatsApp Chat with ")
	base = strings.TrimPrefix(base, "WhatsApp Chat - ")
	return base
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// terminalWidth is the report wrap width: the terminal width, or 0 (no
// wrapping) when stdout is not a terminal.
func terminalWidth() int {
	if !stdoutIsTerminal() {
		return 0
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return w
}
