package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	unsafeRe   = regexp.MustCompile(`[^\w\s-]`)
	collapseRe = regexp.MustCompile(`[-\s]+`)
)

// SanitizeFilename derives a filesystem-safe base name from a video title:
// unsafe characters are dropped and whitespace runs become single dashes.
func SanitizeFilename(title string) string {
	name := unsafeRe.ReplaceAllString(title, "")
	name = collapseRe.ReplaceAllString(strings.TrimSpace(name), "-")
	name = strings.Trim(name, "-")
	if name == "" {
		name = "transcript"
	}
	return name
}

// WriteFileInDir writes data to dir/name, creating dir if needed.
func WriteFileInDir(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write output file: %w", err)
	}
	return path, nil
}
