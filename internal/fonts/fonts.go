// Package fonts locates console fonts under assets/fonts.
package fonts

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Dir is the font root, relative to the working directory.
const Dir = "assets/fonts"

// Exts are the file extensions treated as fonts.
var Exts = []string{".ttf", ".otf"}

// IsFont reports whether name has a font extension.
func IsFont(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// ScanDir returns the font files under dir as sorted slash-separated relative paths
// (e.g. "Inter/Inter-Regular.ttf"). A missing dir yields no fonts and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || !IsFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	sort.Strings(out)
	return out, err
}

// normalize lowercases and removes spaces, dashes and underscores for fuzzy matching.
func normalize(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

// Find returns the path (joined with dir) of the first font under dir whose relative path contains
// search, ignoring case, spaces, dashes and underscores. "Google Sans" matches
// "Google_Sans/GoogleSans-Regular.ttf". When several match, a "Regular" face wins.
func Find(dir, search string) (string, error) {
	norm := normalize(strings.TrimSpace(search))
	if norm == "" {
		return "", os.ErrNotExist
	}
	list, err := ScanDir(dir)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, rel := range list {
		if strings.Contains(normalize(rel), norm) {
			matches = append(matches, rel)
		}
	}
	if len(matches) == 0 {
		return "", os.ErrNotExist
	}
	best := matches[0]
	for _, rel := range matches {
		if strings.Contains(strings.ToLower(rel), "regular") {
			best = rel
			break
		}
	}
	return filepath.Join(dir, filepath.FromSlash(best)), nil
}
