package core

import (
	"log/slog"
	"testing"
)

func TestApplyOptions(t *testing.T) {
	logger := slog.Default()

	cfg := ApplyOptions(WithResolution(240), WithLogger(logger))
	if cfg.Resolution != 240 {
		t.Fatalf("resolution = %d, want 240", cfg.Resolution)
	}
	if cfg.Logger != logger {
		t.Fatal("logger was not applied")
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyOptions(WithResolution(0), WithResolution(-5), WithLogger(nil), nil)
	if cfg.Resolution != DefaultResolution {
		t.Fatalf("resolution = %d, want %d", cfg.Resolution, DefaultResolution)
	}
	if cfg.Logger == nil {
		t.Fatal("logger must never be nil")
	}
	if cfg.Logger.Enabled(t.Context(), slog.LevelError) {
		t.Fatal("default logger should be disabled")
	}
}
