package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeConversion(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.normalizeHistory()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeConversion() error {
	var err error
	if strings.TrimSpace(c.Conversion.InputDir) == "" {
		c.Conversion.InputDir = defaultInputDir
	}
	if c.Conversion.InputDir, err = expandPath(strings.TrimSpace(c.Conversion.InputDir)); err != nil {
		return fmt.Errorf("conversion.input_dir: %w", err)
	}
	if strings.TrimSpace(c.Conversion.OutputDir) == "" {
		c.Conversion.OutputDir = defaultOutputDir
	}
	if c.Conversion.OutputDir, err = expandPath(strings.TrimSpace(c.Conversion.OutputDir)); err != nil {
		return fmt.Errorf("conversion.output_dir: %w", err)
	}

	c.Conversion.Format = strings.ToLower(strings.TrimSpace(c.Conversion.Format))
	if c.Conversion.Format == "" {
		c.Conversion.Format = defaultFormat
	}

	if value, ok := os.LookupEnv("AUDIOCONV_TOOL"); ok && strings.TrimSpace(value) != "" {
		c.Conversion.Tool = strings.TrimSpace(value)
	}
	c.Conversion.Tool = strings.TrimSpace(c.Conversion.Tool)
	if c.Conversion.Tool == "" {
		c.Conversion.Tool = defaultTool
	}
	if c.Conversion.ToolArgs == nil {
		c.Conversion.ToolArgs = append([]string(nil), defaultToolArgs...)
	}
	c.Conversion.FFprobe = strings.TrimSpace(c.Conversion.FFprobe)
	if c.Conversion.FFprobe == "" {
		c.Conversion.FFprobe = defaultFFprobe
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeHistory() {
	if c.History.Limit <= 0 {
		c.History.Limit = defaultHistoryLimit
	}
}
