package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"audioconv/internal/config"
)

type commandContext struct {
	flags     *rootFlags
	overrides config.Overrides

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(flags *rootFlags) *commandContext {
	return &commandContext{flags: flags}
}

// bindOverrides captures flags the user set explicitly on cmd.
func (c *commandContext) bindOverrides(cmd *cobra.Command) {
	c.overrides = overridesFromFlags(cmd, c.flags)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, _, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.Apply(c.overrides); err != nil {
			c.configErr = fmt.Errorf("invalid arguments: %w", err)
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
	})
	return c.config, c.configErr
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
