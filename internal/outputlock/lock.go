// Package outputlock prevents two batch runs from writing into the same
// output directory at once.
//
// Locks are advisory flock(2) files kept in the state directory, keyed by the
// absolute output path, so the output directory itself only ever contains
// converted files.
package outputlock

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"audioconv/internal/services"
)

// Lock is a held output directory lock.
type Lock struct {
	lock      *flock.Flock
	outputDir string
}

// Acquire takes the lock for outputDir without blocking. A lock held by
// another run is reported as an output directory error.
func Acquire(lockDir, outputDir string) (*Lock, error) {
	absOutput, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, services.Wrap(services.ErrOutputDir, "lock output directory", outputDir, err)
	}
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrOutputDir, "create lock directory", lockDir, err)
	}

	fl := flock.New(PathFor(lockDir, absOutput))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrOutputDir, "lock output directory", absOutput, err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrOutputDir, "lock output directory",
			fmt.Sprintf("another audioconv run is writing to %s", absOutput), nil)
	}
	return &Lock{lock: fl, outputDir: absOutput}, nil
}

// PathFor returns the lock file used for outputDir.
func PathFor(lockDir, outputDir string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(outputDir)))
	return filepath.Join(lockDir, hex.EncodeToString(sum[:8])+".lock")
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	if l == nil || l.lock == nil {
		return ""
	}
	return l.lock.Path()
}

// Release unlocks the output directory. Releasing a nil lock is a no-op.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
