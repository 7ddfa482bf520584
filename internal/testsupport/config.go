package testsupport

import (
	"path/filepath"
	"testing"

	"audioconv/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The input directory exists and is empty; the output directory does not exist
// yet so callers can exercise its creation.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Conversion.InputDir = filepath.Join(base, "input")
	cfgVal.Conversion.OutputDir = filepath.Join(base, "output")
	cfgVal.Conversion.Workers = 2
	MkdirAll(t, cfgVal.Conversion.InputDir)

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithFormat overrides the target format on the test config.
func WithFormat(format string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Conversion.Format = format
	}
}

// WithWorkers overrides the worker count on the test config.
func WithWorkers(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Conversion.Workers = n
	}
}

// WithStubbedTool writes a stub conversion tool and points the config at it.
func WithStubbedTool(opts StubOptions) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Conversion.Tool = WriteStubTool(b.t, filepath.Join(b.baseDir, "bin"), opts)
	}
}

// WithHistory enables the run history database on the test config.
func WithHistory() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = true
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
