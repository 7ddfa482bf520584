package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"audioconv/internal/services"
)

func TestEnsureDirCreatesParents(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "converted")
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir returned error: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory to exist: %v", err)
	}
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir on existing dir returned error: %v", err)
	}
}

func TestEnsureDirRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "occupied")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	err := EnsureDir(path)
	if err == nil {
		t.Fatal("expected error when path is a file")
	}
	if !errors.Is(err, services.ErrOutputDir) {
		t.Fatalf("expected output dir marker, got %v", err)
	}

	err = EnsureDir(filepath.Join(path, "child"))
	if !errors.Is(err, services.ErrOutputDir) {
		t.Fatalf("expected output dir marker for child of file, got %v", err)
	}
}

func TestStemAndReplaceExt(t *testing.T) {
	cases := []struct {
		path string
		ext  string
		stem string
		want string
	}{
		{"/music/track.flac", "mp3", "track", "track.mp3"},
		{"relative/Live.Set.WAV", ".flac", "Live.Set", "Live.Set.flac"},
		{"noext", "aac", "noext", "noext.aac"},
	}
	for _, tc := range cases {
		if got := Stem(tc.path); got != tc.stem {
			t.Fatalf("Stem(%q) = %q, want %q", tc.path, got, tc.stem)
		}
		if got := ReplaceExt(tc.path, tc.ext); got != tc.want {
			t.Fatalf("ReplaceExt(%q, %q) = %q, want %q", tc.path, tc.ext, got, tc.want)
		}
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	if !Exists(dir) {
		t.Fatal("expected temp dir to exist")
	}
	if Exists(filepath.Join(dir, "missing")) {
		t.Fatal("expected missing path to not exist")
	}
}
