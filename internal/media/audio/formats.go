package audio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Target is an output format a batch can be converted into.
type Target string

const (
	TargetMP3  Target = "mp3"
	TargetWAV  Target = "wav"
	TargetFLAC Target = "flac"
	TargetAAC  Target = "aac"
)

// DefaultTarget is used when no format is requested.
const DefaultTarget = TargetMP3

var targets = []Target{TargetMP3, TargetWAV, TargetFLAC, TargetAAC}

var inputFormats = map[string]struct{}{
	"opus": {},
	"ogg":  {},
	"wav":  {},
	"flac": {},
	"m4a":  {},
	"mp3":  {},
	"aac":  {},
}

// Targets returns the supported target formats in display order.
func Targets() []Target {
	out := make([]Target, len(targets))
	copy(out, targets)
	return out
}

// TargetNames returns the supported target formats as plain strings.
func TargetNames() []string {
	names := make([]string, 0, len(targets))
	for _, t := range targets {
		names = append(names, string(t))
	}
	return names
}

// ParseTarget normalizes value and validates it against the supported targets.
func ParseTarget(value string) (Target, error) {
	normalized := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(value), ".")))
	for _, t := range targets {
		if string(t) == normalized {
			return t, nil
		}
	}
	return "", fmt.Errorf("unsupported target format %q (want one of %s)", value, strings.Join(TargetNames(), ", "))
}

// Extension returns the file extension for the target, including the leading dot.
func (t Target) Extension() string {
	return "." + string(t)
}

func (t Target) String() string {
	return string(t)
}

// IsInputFormat reports whether ext names a convertible source format. The
// comparison ignores case and an optional leading dot.
func IsInputFormat(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		return false
	}
	_, ok := inputFormats[ext]
	return ok
}

// InputFormats returns the convertible source extensions, without dots.
func InputFormats() []string {
	return []string{"opus", "ogg", "wav", "flac", "m4a", "mp3", "aac"}
}

// ExtensionOf returns the lowercase text after the last '.' in the base name
// of path, or "" when the name has no extension.
func ExtensionOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
