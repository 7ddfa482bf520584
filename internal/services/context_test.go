package services_test

import (
	"context"
	"testing"

	"audioconv/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-1")
	ctx = services.WithInput(ctx, "/music/a.flac")

	if id, ok := services.RunIDFromContext(ctx); !ok || id != "run-1" {
		t.Fatalf("unexpected run id: %v %v", id, ok)
	}
	if input, ok := services.InputFromContext(ctx); !ok || input != "/music/a.flac" {
		t.Fatalf("unexpected input: %v %v", input, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "")
	ctx = services.WithInput(ctx, "")
	if _, ok := services.RunIDFromContext(ctx); ok {
		t.Fatal("expected no run id value")
	}
	if _, ok := services.InputFromContext(ctx); ok {
		t.Fatal("expected no input value")
	}
}
