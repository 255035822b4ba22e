package app

import (
	"log/slog"
	"testing"

	"popdict/internal/config"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":  slog.LevelDebug,
		"DEBUG":  slog.LevelDebug,
		" warn ": slog.LevelWarn,
		"error":  slog.LevelError,
		"info":   slog.LevelInfo,
		"":       slog.LevelInfo,
		"bogus":  slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger(config.Config{LogLevel: "debug", LogFormat: "json"})
	if logger == nil {
		t.Fatal("NewLogger returned nil")
	}
	if !logger.Enabled(t.Context(), slog.LevelDebug) {
		t.Error("debug level should be enabled")
	}

	logger = NewLogger(config.Config{LogLevel: "warn"})
	if logger.Enabled(t.Context(), slog.LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
}
