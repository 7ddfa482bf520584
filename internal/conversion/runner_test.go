package conversion_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"audioconv/internal/conversion"
	"audioconv/internal/media/audio"
	"audioconv/internal/services"
	"audioconv/internal/testsupport"
)

func TestOutputPath(t *testing.T) {
	got := conversion.OutputPath("/music/in/track.flac", "/music/out", audio.TargetMP3)
	if want := filepath.Join("/music/out", "track.mp3"); got != want {
		t.Fatalf("OutputPath = %q, want %q", got, want)
	}
	got = conversion.OutputPath("Set.Live.WAV", "out", audio.TargetAAC)
	if want := filepath.Join("out", "Set.Live.aac"); got != want {
		t.Fatalf("OutputPath = %q, want %q", got, want)
	}
}

func TestNewTaskSharedBaseNamesCollide(t *testing.T) {
	a := conversion.NewTask("/in/song.wav", "/out", audio.TargetMP3)
	b := conversion.NewTask("/in/song.flac", "/out", audio.TargetMP3)
	if a.Output != b.Output {
		t.Fatalf("expected identical output paths, got %q and %q", a.Output, b.Output)
	}
}

func TestBuildArgs(t *testing.T) {
	runner := conversion.NewRunner("ffmpeg", conversion.WithArgs([]string{"-y"}))
	task := conversion.NewTask("/in/a.wav", "/out", audio.TargetFLAC)
	got := runner.BuildArgs(task)
	want := []string{"-y", "-i", "/in/a.wav", filepath.Join("/out", "a.flac")}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("BuildArgs = %v, want %v", got, want)
	}

	bare := conversion.NewRunner("ffmpeg").BuildArgs(task)
	if len(bare) != 3 || bare[0] != "-i" {
		t.Fatalf("expected bare contract args, got %v", bare)
	}
}

func TestConvertSuccess(t *testing.T) {
	base := t.TempDir()
	tool := testsupport.WriteStubTool(t, filepath.Join(base, "bin"), testsupport.StubOptions{})
	input := filepath.Join(base, "in", "a.wav")
	testsupport.WriteFile(t, input, 32)
	outDir := filepath.Join(base, "out")
	testsupport.MkdirAll(t, outDir)

	runner := conversion.NewRunner(tool, conversion.WithArgs([]string{"-y"}))
	result := runner.Convert(context.Background(), conversion.NewTask(input, outDir, audio.TargetMP3))
	if !result.Succeeded() {
		t.Fatalf("expected success, got %v", result.Err)
	}
	if result.State != conversion.StateSucceeded || !result.State.Terminal() {
		t.Fatalf("unexpected state %q", result.State)
	}
	if result.Diagnostic() != "" {
		t.Fatalf("expected empty diagnostic, got %q", result.Diagnostic())
	}
	if !strings.Contains(result.Stdout, "converting") {
		t.Fatalf("expected captured stdout, got %q", result.Stdout)
	}
	data, err := os.ReadFile(filepath.Join(outDir, "a.mp3"))
	if err != nil {
		t.Fatalf("expected output file: %v", err)
	}
	if !strings.Contains(string(data), input) {
		t.Fatalf("unexpected output contents %q", data)
	}
}

func TestConvertNonZeroExit(t *testing.T) {
	base := t.TempDir()
	tool := testsupport.WriteStubTool(t, filepath.Join(base, "bin"), testsupport.StubOptions{
		FailMatch: "broken",
		Stderr:    "broken.wav: Invalid data found when processing input",
	})
	input := filepath.Join(base, "broken.wav")
	testsupport.WriteFile(t, input, 8)

	result := conversion.NewRunner(tool).Convert(context.Background(), conversion.NewTask(input, base, audio.TargetMP3))
	if result.Succeeded() {
		t.Fatal("expected failure")
	}
	if !errors.Is(result.Err, services.ErrConversion) {
		t.Fatalf("expected conversion error, got %v", result.Err)
	}
	var toolErr *conversion.ToolError
	if !errors.As(result.Err, &toolErr) {
		t.Fatalf("expected ToolError, got %T", result.Err)
	}
	if toolErr.ExitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", toolErr.ExitCode)
	}
	if !strings.Contains(result.Diagnostic(), "Invalid data found") {
		t.Fatalf("expected stderr in diagnostic, got %q", result.Diagnostic())
	}
}

func TestConvertMissingTool(t *testing.T) {
	input := filepath.Join(t.TempDir(), "a.wav")
	testsupport.WriteFile(t, input, 8)

	runner := conversion.NewRunner(filepath.Join(t.TempDir(), "no-such-tool"))
	result := runner.Convert(context.Background(), conversion.NewTask(input, t.TempDir(), audio.TargetMP3))
	if result.Succeeded() {
		t.Fatal("expected failure for missing tool")
	}
	if !errors.Is(result.Err, services.ErrToolLaunch) {
		t.Fatalf("expected tool launch error, got %v", result.Err)
	}
	if services.IsFatal(result.Err) {
		t.Fatal("tool launch errors must stay per-task")
	}
}

func TestConvertNonExecutableTool(t *testing.T) {
	testsupport.RequireShell(t)
	tool := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(tool, []byte("#!/bin/sh\nexit 0\n"), 0o644); err != nil {
		t.Fatalf("write tool: %v", err)
	}
	result := conversion.NewRunner(tool).Convert(context.Background(), conversion.NewTask("a.wav", t.TempDir(), audio.TargetMP3))
	if !errors.Is(result.Err, services.ErrToolLaunch) {
		t.Fatalf("expected tool launch error, got %v", result.Err)
	}
}

func TestConvertCanceledContext(t *testing.T) {
	base := t.TempDir()
	tool := testsupport.WriteStubTool(t, filepath.Join(base, "bin"), testsupport.StubOptions{SleepSeconds: 5})
	input := filepath.Join(base, "a.wav")
	testsupport.WriteFile(t, input, 8)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	result := conversion.NewRunner(tool).Convert(ctx, conversion.NewTask(input, base, audio.TargetMP3))
	if result.Succeeded() {
		t.Fatal("expected canceled conversion to fail")
	}
	if !errors.Is(result.Err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", result.Err)
	}
	if time.Since(start) > 4*time.Second {
		t.Fatal("expected child process to be killed on cancellation")
	}
}

type stubVerifier struct {
	err  error
	seen string
}

func (s *stubVerifier) Verify(_ context.Context, path string) error {
	s.seen = path
	return s.err
}

func TestConvertVerification(t *testing.T) {
	base := t.TempDir()
	tool := testsupport.WriteStubTool(t, filepath.Join(base, "bin"), testsupport.StubOptions{})
	input := filepath.Join(base, "a.wav")
	testsupport.WriteFile(t, input, 8)
	task := conversion.NewTask(input, base, audio.TargetFLAC)

	ok := &stubVerifier{}
	result := conversion.NewRunner(tool, conversion.WithVerifier(ok)).Convert(context.Background(), task)
	if !result.Succeeded() {
		t.Fatalf("expected success, got %v", result.Err)
	}
	if ok.seen != task.Output {
		t.Fatalf("verifier saw %q, want %q", ok.seen, task.Output)
	}

	bad := &stubVerifier{err: errors.New("no audio stream")}
	result = conversion.NewRunner(tool, conversion.WithVerifier(bad)).Convert(context.Background(), task)
	if !errors.Is(result.Err, services.ErrVerification) {
		t.Fatalf("expected verification error, got %v", result.Err)
	}
}

func TestProbeVerifier(t *testing.T) {
	testsupport.RequireShell(t)
	dir := t.TempDir()
	withAudio := filepath.Join(dir, "ffprobe-audio")
	script := "#!/bin/sh\necho '{\"streams\":[{\"index\":0,\"codec_type\":\"audio\",\"codec_name\":\"mp3\"}],\"format\":{\"format_name\":\"mp3\"}}'\n"
	if err := os.WriteFile(withAudio, []byte(script), 0o755); err != nil {
		t.Fatalf("write ffprobe stub: %v", err)
	}
	noAudio := filepath.Join(dir, "ffprobe-empty")
	if err := os.WriteFile(noAudio, []byte("#!/bin/sh\necho '{\"streams\":[],\"format\":{}}'\n"), 0o755); err != nil {
		t.Fatalf("write ffprobe stub: %v", err)
	}

	if err := (conversion.ProbeVerifier{Binary: withAudio}).Verify(context.Background(), "out.mp3"); err != nil {
		t.Fatalf("expected verification to pass, got %v", err)
	}
	if err := (conversion.ProbeVerifier{Binary: noAudio}).Verify(context.Background(), "out.mp3"); err == nil {
		t.Fatal("expected verification to fail without audio streams")
	}
}
