package logging

import (
	"log/slog"
	"testing"

	"github.com/evryt-goodday/smartfarm-core/internal/infrastructure/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("creates logger with text format", func(t *testing.T) {
		logger := New(config.LoggingConfig{Level: "debug", Format: "text", Output: "stderr"}, "test")
		if logger == nil || logger.Logger == nil {
			t.Fatal("New() returned nil logger")
		}
	})

	t.Run("with adds attributes without mutating parent", func(t *testing.T) {
		logger := New(config.LoggingConfig{Level: "info", Format: "json", Output: "stdout"}, "test")
		child := logger.With("component", "ingest")
		if child == logger {
			t.Error("With() should return a new logger")
		}
	})
}

func TestDefault(t *testing.T) {
	logger := Default()
	if logger == nil || logger.Logger == nil {
		t.Fatal("Default() returned nil logger")
	}
}
