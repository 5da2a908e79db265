package util

import (
	"path/filepath"
	"strconv"
	"strings"
)

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}

// SplitNonEmpty splits s by sep, trimming items and dropping empty ones.
func SplitNonEmpty(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// TrimExt returns the base name of path without the given extension.
// The extension is only removed when it matches exactly.
func TrimExt(path, ext string) string {
	return strings.TrimSuffix(filepath.Base(path), ext)
}
