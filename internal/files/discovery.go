// Package files discovers the workbooks available to the engine. Discovery
// is deliberately separate from the engine itself: the engine receives a
// workbook it was told to read and never walks the filesystem on its own.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileInfo describes one discovered workbook.
type FileInfo struct {
	Path    string    `json:"-"`
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modified"`
}

// Discovery lists workbooks under a base directory.
type Discovery struct {
	basePath string
}

// NewDiscovery creates a discovery rooted at basePath.
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindWorkbooks returns every .xlsx file directly under the base directory,
// sorted by name so identifiers are stable across scans. Excel lock files
// ("~$...") are skipped.
func (d *Discovery) FindWorkbooks() ([]FileInfo, error) {
	entries, err := os.ReadDir(d.basePath)
	if err != nil {
		return nil, fmt.Errorf("read workbook directory %s: %w", d.basePath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".xlsx") || strings.HasPrefix(name, "~$") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(d.basePath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// Resolve maps a workbook identifier (a bare file name from FindWorkbooks)
// back to its path. Names carrying path separators are rejected so callers
// cannot escape the base directory.
func (d *Discovery) Resolve(name string) (FileInfo, error) {
	if name == "" || name != filepath.Base(name) {
		return FileInfo{}, fmt.Errorf("invalid workbook name %q", name)
	}

	path := filepath.Join(d.basePath, name)
	info, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, fmt.Errorf("workbook %q: %w", name, err)
	}
	if info.IsDir() {
		return FileInfo{}, fmt.Errorf("workbook %q is a directory", name)
	}

	return FileInfo{
		Path:    path,
		Name:    name,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}
