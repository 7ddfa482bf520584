package conversion

import (
	"context"
	"fmt"

	"audioconv/internal/media/ffprobe"
)

// ProbeVerifier checks that ffprobe finds at least one audio stream in the output.
type ProbeVerifier struct {
	Binary string
}

// Verify implements Verifier.
func (v ProbeVerifier) Verify(ctx context.Context, path string) error {
	result, err := ffprobe.Inspect(ctx, v.Binary, path)
	if err != nil {
		return err
	}
	if result.AudioStreamCount() == 0 {
		return fmt.Errorf("no audio stream in %s", path)
	}
	return nil
}
