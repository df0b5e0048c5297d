package load

import (
	"os"
	"path/filepath"
	"strings"
)

type FileInfo struct {
	Path  string
	Kind  string // "txt" or "zip"
	Mtime int64
	Size  int64
}

// FindExports walks root for chat exports. Hidden directories are skipped.
func FindExports(root string) ([]FileInfo, error) {
	var files []FileInfo
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable dirs
		}
		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		kind := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
		if kind != "txt" && kind != "zip" {
			return nil
		}
		files = append(files, FileInfo{
			Path:  path,
			Kind:  kind,
			Mtime: info.ModTime().Unix(),
			Size:  info.Size(),
		})
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return files, nil
}
