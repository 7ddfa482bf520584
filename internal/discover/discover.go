package discover

import (
	"os"
	"path/filepath"

	"audioconv/internal/media/audio"
	"audioconv/internal/services"
)

// Files returns the convertible files directly inside dir, in directory
// listing order. A missing or unreadable dir is reported as a discovery error.
func Files(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, services.Wrap(services.ErrDiscovery, "list input directory", dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if !isRegularFile(entry, path) {
			continue
		}
		if audio.IsInputFormat(audio.ExtensionOf(entry.Name())) {
			files = append(files, path)
		}
	}
	return files, nil
}

// isRegularFile follows symlinks so linked tracks are converted like plain ones.
func isRegularFile(entry os.DirEntry, path string) bool {
	mode := entry.Type()
	if mode.IsRegular() {
		return true
	}
	if mode&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
