package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDiscovery marks an input directory that is missing or unreadable.
	ErrDiscovery = errors.New("discovery error")
	// ErrOutputDir marks an output directory that cannot be created or locked.
	ErrOutputDir = errors.New("output directory error")
	// ErrToolLaunch marks an external tool that could not be started.
	ErrToolLaunch = errors.New("tool launch error")
	// ErrConversion marks an external tool that ran and exited non-zero.
	ErrConversion = errors.New("conversion error")
	// ErrVerification marks an output that failed post-conversion inspection.
	ErrVerification = errors.New("verification error")
)

// Wrap builds an error message that includes operation context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		marker = ErrConversion
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether err aborts a whole batch rather than a single file.
func IsFatal(err error) bool {
	return errors.Is(err, ErrDiscovery) || errors.Is(err, ErrOutputDir)
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
