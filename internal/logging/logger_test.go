package logging

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func TestNewLoggerNotNil(t *testing.T) {
	logger := NewLogger(Config{})
	if logger == nil {
		t.Fatal("expected logger to be non-nil")
	}
}

func TestNewLoggerRespectsLevel(t *testing.T) {
	logger := NewLogger(Config{Format: "text", Level: "warn"})

	if enabled := logger.Enabled(context.Background(), slog.LevelWarn); !enabled {
		t.Fatal("expected warn level to be enabled")
	}
	if enabled := logger.Enabled(context.Background(), slog.LevelInfo); enabled {
		t.Fatal("expected info level to be disabled")
	}
}

func TestNewLoggerDefaultsToInfoOnGarbage(t *testing.T) {
	logger := NewLogger(Config{Level: "loud"})

	if enabled := logger.Enabled(context.Background(), slog.LevelInfo); !enabled {
		t.Fatal("expected info level to be enabled by default")
	}
	if enabled := logger.Enabled(context.Background(), slog.LevelDebug); enabled {
		t.Fatal("expected debug level to be disabled by default")
	}
}

func TestFromContextReturnsStoredLogger(t *testing.T) {
	stored := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := WithLogger(context.Background(), stored)

	if got := FromContext(ctx, nil); got != stored {
		t.Fatalf("expected stored logger returned")
	}
}

func TestFromContextFallsBack(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))

	if got := FromContext(context.Background(), fallback); got != fallback {
		t.Fatalf("expected fallback logger returned")
	}
	if got := FromContext(nil, fallback); got != fallback { //nolint:staticcheck // nil ctx is the case under test
		t.Fatalf("expected fallback logger for nil context")
	}
}
