package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"audioconv/internal/services"
)

// EnsureDir creates dir and any missing parents. Failures are tagged as
// output directory errors since every caller writes conversion output there.
func EnsureDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return services.Wrap(services.ErrOutputDir, "create output directory", "empty path", nil)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return services.Wrap(services.ErrOutputDir, "create output directory", dir, err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return services.Wrap(services.ErrOutputDir, "stat output directory", dir, err)
	}
	if !info.IsDir() {
		return services.Wrap(services.ErrOutputDir, "create output directory", dir, errors.New("not a directory"))
	}
	return nil
}

// Stem returns the base name of path with its final extension removed.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ReplaceExt returns the base name of path with its extension swapped for ext.
// ext may be given with or without the leading dot.
func ReplaceExt(path, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	return fmt.Sprintf("%s.%s", Stem(path), ext)
}

// Exists reports whether path names an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
