package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directories audioconv keeps its own state in.
type Paths struct {
	StateDir string `toml:"state_dir"`
}

// Conversion contains the batch conversion settings.
type Conversion struct {
	InputDir    string   `toml:"input_dir"`
	OutputDir   string   `toml:"output_dir"`
	Format      string   `toml:"format"`
	Workers     int      `toml:"workers"`
	Tool        string   `toml:"tool"`
	ToolArgs    []string `toml:"tool_args"`
	FailOnError bool     `toml:"fail_on_error"`
	// VerifyOutput inspects each converted file with ffprobe and fails the
	// task when no audio stream is found.
	VerifyOutput bool   `toml:"verify_output"`
	FFprobe      string `toml:"ffprobe"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// File additionally appends log lines to audioconv.log in the state directory.
	File bool `toml:"file"`
}

// History contains configuration for the run history database.
type History struct {
	Enabled bool `toml:"enabled"`
	Limit   int  `toml:"limit"`
}

// Config encapsulates all configuration values for audioconv.
//
// Configuration sections by subsystem:
//   - Paths: state directory for locks, logs, and history
//   - Conversion: input/output directories, target format, workers, external tool
//   - Logging: log format, level, and optional log file
//   - History: optional SQLite record of past runs
type Config struct {
	Paths      Paths      `toml:"paths"`
	Conversion Conversion `toml:"conversion"`
	Logging    Logging    `toml:"logging"`
	History    History    `toml:"history"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/audioconv/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("audioconv.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// Overrides carries command-line values that take precedence over the file.
// Nil fields leave the loaded value untouched.
type Overrides struct {
	InputDir    *string
	OutputDir   *string
	Format      *string
	Workers     *int
	Tool        *string
	FailOnError *bool
}

// Apply merges overrides into the config and re-validates the result.
func (c *Config) Apply(o Overrides) error {
	if o.InputDir != nil {
		c.Conversion.InputDir = *o.InputDir
	}
	if o.OutputDir != nil {
		c.Conversion.OutputDir = *o.OutputDir
	}
	if o.Format != nil {
		c.Conversion.Format = *o.Format
	}
	if o.Workers != nil {
		c.Conversion.Workers = *o.Workers
	}
	if o.FailOnError != nil {
		c.Conversion.FailOnError = *o.FailOnError
	}
	if err := c.normalizeConversion(); err != nil {
		return err
	}
	// An explicit flag beats AUDIOCONV_TOOL.
	if o.Tool != nil && strings.TrimSpace(*o.Tool) != "" {
		c.Conversion.Tool = strings.TrimSpace(*o.Tool)
	}
	return c.Validate()
}

// EnsureDirectories creates the state directory. The output directory is
// created by the batch run itself so its failure can be reported distinctly.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Paths.StateDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.StateDir, err)
	}
	return nil
}

// LogFilePath returns the log file location inside the state directory.
func (c *Config) LogFilePath() string {
	return filepath.Join(c.Paths.StateDir, defaultLogFileName)
}

// HistoryDBPath returns the run history database location.
func (c *Config) HistoryDBPath() string {
	return filepath.Join(c.Paths.StateDir, defaultHistoryDBName)
}

// LockDir returns the directory holding output directory lock files.
func (c *Config) LockDir() string {
	return filepath.Join(c.Paths.StateDir, "locks")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
