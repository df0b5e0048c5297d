package load

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ErrNoChat is returned for a zip export without a .txt chat inside.
var ErrNoChat = errors.New("no chat text file in archive")

// Load returns the text of a chat export: a .txt file as is, or the first
// .txt entry of a .zip export.
func Load(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return loadZip(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read export: %w", err)
	}
	return string(data), nil
}

func loadZip(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open zip %s: %w", path, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.EqualFold(filepath.Ext(f.Name), ".txt") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open %s in %s: %w", f.Name, path, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("read %s in %s: %w", f.Name, path, err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("%s: %w", path, ErrNoChat)
}

// FixEncoding strips a UTF-8 byte order mark and repairs lines whose UTF-8
// bytes were decoded as Windows-1252 somewhere along the way ("Ã¶" for "ö").
// Clean lines come back unchanged.
func FixEncoding(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	lines := strings.Split(s, "\n")
	changed := false
	for i, line := range lines {
		if fixed, ok := repairLine(line); ok {
			lines[i] = fixed
			changed = true
		}
	}
	if !changed {
		return s
	}
	return strings.Join(lines, "\n")
}

func repairLine(line string) (string, bool) {
	if !strings.ContainsAny(line, "ÃÄÅâð") {
		return "", false
	}
	buf := make([]byte, 0, len(line))
	lossy := false
	for _, r := range line {
		switch {
		case r < utf8.RuneSelf:
			buf = append(buf, byte(r))
		case r == utf8.RuneError:
			// the original byte is gone; keep the marker and patch up below
			lossy = true
			buf = utf8.AppendRune(buf, r)
		default:
			if b, ok := charmap.Windows1252.EncodeRune(r); ok {
				buf = append(buf, b)
			} else if r < 0x100 {
				// bytes Windows-1252 leaves undefined (0x81, 0x8D, 0x8F,
				// 0x90, 0x9D) come through as C1 controls
				buf = append(buf, byte(r))
			} else {
				// a rune outside Windows-1252 means the line is genuine UTF-8
				return "", false
			}
		}
	}
	raw := string(buf)
	if lossy {
		raw = strings.ToValidUTF8(raw, "\uFFFD")
	}
	if raw == line || !utf8.ValidString(raw) {
		return "", false
	}
	return raw, true
}
