package config

import (
	"errors"
	"fmt"
	"strings"

	"audioconv/internal/media/audio"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateConversion(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateConversion() error {
	if strings.TrimSpace(c.Conversion.InputDir) == "" {
		return errors.New("conversion.input_dir must be set")
	}
	if strings.TrimSpace(c.Conversion.OutputDir) == "" {
		return errors.New("conversion.output_dir must be set")
	}
	if _, err := audio.ParseTarget(c.Conversion.Format); err != nil {
		return fmt.Errorf("conversion.format: %w", err)
	}
	if c.Conversion.Workers <= 0 {
		return fmt.Errorf("conversion.workers must be positive, got %d", c.Conversion.Workers)
	}
	if strings.TrimSpace(c.Conversion.Tool) == "" {
		return errors.New("conversion.tool must be set")
	}
	if c.Conversion.VerifyOutput && strings.TrimSpace(c.Conversion.FFprobe) == "" {
		return errors.New("conversion.ffprobe must be set when conversion.verify_output is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}

// Target returns the validated target format.
func (c *Config) Target() audio.Target {
	target, err := audio.ParseTarget(c.Conversion.Format)
	if err != nil {
		return audio.DefaultTarget
	}
	return target
}
