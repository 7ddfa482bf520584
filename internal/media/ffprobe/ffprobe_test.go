package ffprobe

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{Index: 0, CodecType: "video", CodecName: "mjpeg"},
			{Index: 1, CodecType: "audio", CodecName: "mp3", SampleRate: "44100", Channels: 2},
			{Index: 2, CodecType: "AUDIO", CodecName: "aac"},
		},
		Format: Format{
			Duration: "123.45",
			Size:     "1000",
			BitRate:  "32000",
		},
	}
	if result.AudioStreamCount() != 2 {
		t.Fatalf("expected 2 audio streams, got %d", result.AudioStreamCount())
	}
	primary, ok := result.PrimaryAudio()
	if !ok || primary.Index != 1 || primary.SampleRateHz() != 44100 {
		t.Fatalf("unexpected primary audio stream: %+v", primary)
	}
	if result.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 1000 {
		t.Fatalf("unexpected size: %d", result.SizeBytes())
	}
	if result.BitRate() != 32000 {
		t.Fatalf("unexpected bitrate: %d", result.BitRate())
	}
}

func TestResultHelpersHandleInvalidNumbers(t *testing.T) {
	result := Result{
		Streams: []Stream{{CodecType: "audio", SampleRate: "n/a"}},
		Format: Format{
			Duration: "bad",
			Size:     "-1",
			BitRate:  "nope",
		},
	}
	if !math.IsNaN(result.DurationSeconds()) {
		t.Fatalf("expected duration NaN, got %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 0 {
		t.Fatalf("expected size 0, got %d", result.SizeBytes())
	}
	if result.BitRate() != 0 {
		t.Fatalf("expected bitrate 0, got %d", result.BitRate())
	}
	if result.Streams[0].SampleRateHz() != 0 {
		t.Fatalf("expected sample rate 0, got %d", result.Streams[0].SampleRateHz())
	}
}

func TestPrimaryAudioMissing(t *testing.T) {
	if _, ok := (Result{Streams: []Stream{{CodecType: "video"}}}).PrimaryAudio(); ok {
		t.Fatal("expected no audio stream")
	}
}

func writeProbeStub(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs")
	}
	path := filepath.Join(t.TempDir(), "ffprobe")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestInspectDecodesOutput(t *testing.T) {
	stub := writeProbeStub(t, `echo '{"streams":[{"index":0,"codec_type":"audio","codec_name":"flac","sample_rate":"48000"}],"format":{"format_name":"flac","duration":"3.5"}}'`+"\n")

	result, err := Inspect(context.Background(), stub, "out.flac")
	if err != nil {
		t.Fatalf("Inspect returned error: %v", err)
	}
	if result.Format.FormatName != "flac" || result.DurationSeconds() != 3.5 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestInspectReportsToolFailure(t *testing.T) {
	stub := writeProbeStub(t, "echo 'out.mp3: No such file or directory' >&2\nexit 1\n")

	_, err := Inspect(context.Background(), stub, "out.mp3")
	if err == nil || !strings.Contains(err.Error(), "No such file") {
		t.Fatalf("expected stderr in error, got %v", err)
	}
}

func TestInspectRejectsEmptyPath(t *testing.T) {
	if _, err := Inspect(context.Background(), "ffprobe", "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
