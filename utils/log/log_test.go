package log

import (
	"log/slog"
	"path/filepath"
	"testing"
)

func TestConvertStringToLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"DEBUG": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"WARN":  slog.LevelWarn,
		"ERROR": slog.LevelError,
	}

	for input, expected := range cases {
		level, err := convertStringToLogLevel(input)
		if err != nil {
			t.Errorf("Expected no error for %s, got: %v", input, err)
		}
		if level != expected {
			t.Errorf("Expected %v for %s, got %v", expected, input, level)
		}
	}

	level, err := convertStringToLogLevel("TRACE")
	if err == nil {
		t.Error("Expected error for unknown level, got nil")
	}
	if level != slog.LevelInfo {
		t.Errorf("Expected INFO as fallback, got %v", level)
	}
}

func TestBuildLogPath(t *testing.T) {
	path, err := BuildLogPath("cpu_%s", "2")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if path != filepath.Join("logs", "cpu_2.log") {
		t.Errorf("Unexpected log path %s", path)
	}

	if _, err := BuildLogPath("cpu_%s", ""); err == nil {
		t.Error("Expected error for empty id, got nil")
	}
}
