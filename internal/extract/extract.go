// Package extract supplies raw document text from the filesystem.
package extract

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// textExtensions lists the file types extracted as plain text.
var textExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

// FileExtractor reads documents relative to a root directory.
type FileExtractor struct {
	root string
}

func NewFileExtractor(root string) *FileExtractor {
	return &FileExtractor{root: root}
}

// List walks the root and returns the relative paths of extractable
// documents, sorted for a stable build order.
func (e *FileExtractor) List() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(e.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !textExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		rel, err := filepath.Rel(e.root, path)
		if err != nil {
			rel = path
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// Extract returns the raw text of one document, or fails for that
// document alone.
func (e *FileExtractor) Extract(path string) (string, error) {
	if !textExtensions[strings.ToLower(filepath.Ext(path))] {
		return "", fmt.Errorf("unsupported document type: %s", path)
	}
	data, err := os.ReadFile(filepath.Join(e.root, path))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
