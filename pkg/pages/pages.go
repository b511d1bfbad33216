// Package pages finds and loads the HTML pages of a site directory.
package pages

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Page is one HTML document on disk.
type Page struct {
	Path    string
	Name    string
	Content string
	// Synced reports whether the sentinel marker was present when loaded.
	Synced bool
}

// Load reads the page at path. An empty sentinel never marks a page synced.
func Load(path, sentinel string) (*Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page %s: %w", path, err)
	}
	content := string(data)
	return &Page{
		Path:    path,
		Name:    filepath.Base(path),
		Content: content,
		Synced:  sentinel != "" && strings.Contains(content, sentinel),
	}, nil
}

// IsPageName reports whether name has an .html or .htm extension.
func IsPageName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return true
	}
	return false
}

// IsCandidate reports whether a glob scan would pick up name.
func IsCandidate(name string, exclude []string) bool {
	return IsPageName(name) && !slices.Contains(exclude, name)
}

// ScanGlob returns every page directly inside dir, minus the excluded names.
// Subdirectories are not descended into.
func ScanGlob(dir string, exclude []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read site directory %s: %w", dir, err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !IsCandidate(entry.Name(), exclude) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

// ScanAllowList returns the listed pages that exist in dir, in list order.
// Missing names are skipped. A name that cannot be inspected for another
// reason is kept so the failure surfaces when it is read.
func ScanAllowList(dir string, names []string) ([]string, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("failed to read site directory %s: %w", dir, err)
	}
	var paths []string
	for _, name := range names {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			paths = append(paths, path)
			continue
		}
		if info.IsDir() {
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ScanMode selects how candidate pages are discovered.
type ScanMode string

const (
	ScanGlobMode      ScanMode = "glob"
	ScanAllowListMode ScanMode = "allowlist"
)

// ParseScanMode validates a scan mode name.
func ParseScanMode(s string) (ScanMode, error) {
	switch ScanMode(strings.ToLower(s)) {
	case ScanGlobMode:
		return ScanGlobMode, nil
	case ScanAllowListMode, "allow-list":
		return ScanAllowListMode, nil
	}
	return "", fmt.Errorf("unknown scan mode %q (want %q or %q)", s, ScanGlobMode, ScanAllowListMode)
}

// Scan dispatches to ScanGlob or ScanAllowList.
func Scan(dir string, mode ScanMode, exclude, allow []string) ([]string, error) {
	if mode == ScanAllowListMode {
		return ScanAllowList(dir, allow)
	}
	return ScanGlob(dir, exclude)
}
