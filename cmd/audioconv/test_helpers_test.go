package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"audioconv/internal/testsupport"
)

type cliTestEnv struct {
	baseDir    string
	inputDir   string
	outputDir  string
	stateDir   string
	configPath string
	tool       string
}

func setupCLITestEnv(t *testing.T, stub testsupport.StubOptions, extraConfig string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	home := filepath.Join(base, "home")
	testsupport.MkdirAll(t, home)
	t.Setenv("HOME", home)
	t.Setenv("AUDIOCONV_TOOL", "")
	chdirForTest(t, base)

	env := &cliTestEnv{
		baseDir:    base,
		inputDir:   filepath.Join(base, "input"),
		outputDir:  filepath.Join(base, "output"),
		stateDir:   filepath.Join(base, "state"),
		configPath: filepath.Join(base, "audioconv-test.toml"),
		tool:       testsupport.WriteStubTool(t, filepath.Join(base, "bin"), stub),
	}
	testsupport.MkdirAll(t, env.inputDir)
	writeTestConfig(t, env.configPath, env, extraConfig)
	return env
}

func writeTestConfig(t *testing.T, path string, env *cliTestEnv, extra string) {
	t.Helper()
	content := fmt.Sprintf("[paths]\nstate_dir = %q\n\n[conversion]\ntool = %q\n", env.stateDir, env.tool)
	if extra != "" {
		content += "\n" + extra + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func (e *cliTestEnv) addInputs(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		testsupport.WriteFile(t, filepath.Join(e.inputDir, name), 64)
	}
}

func (e *cliTestEnv) dirArgs(args ...string) []string {
	return append([]string{"-i", e.inputDir, "-o", e.outputDir}, args...)
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

// chdirForTest mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
