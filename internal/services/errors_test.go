package services_test

import (
	"errors"
	"strings"
	"testing"

	"audioconv/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrToolLaunch, "convert", "start ffmpeg", base)
	if !errors.Is(err, services.ErrToolLaunch) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"convert", "start ffmpeg", "boom"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarkerAndDetail(t *testing.T) {
	err := services.Wrap(nil, "", "", nil)
	if !errors.Is(err, services.ErrConversion) {
		t.Fatalf("expected default conversion marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected placeholder detail, got %q", err.Error())
	}
}

func TestIsFatal(t *testing.T) {
	cases := []struct {
		marker error
		fatal  bool
	}{
		{services.ErrDiscovery, true},
		{services.ErrOutputDir, true},
		{services.ErrToolLaunch, false},
		{services.ErrConversion, false},
		{services.ErrVerification, false},
	}
	for _, tc := range cases {
		err := services.Wrap(tc.marker, "op", "msg", errors.New("cause"))
		if got := services.IsFatal(err); got != tc.fatal {
			t.Fatalf("IsFatal(%v) = %v, want %v", tc.marker, got, tc.fatal)
		}
	}
}
