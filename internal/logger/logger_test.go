package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"unknown": slog.LevelInfo,
	}

	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_JSONWithAttributes(t *testing.T) {
	var buf bytes.Buffer

	log := New("info", "json", &buf).With("view", "hall")
	log.Info("computed", "hosts", 3)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("Expected JSON line, got %q: %v", buf.String(), err)
	}

	if record["msg"] != "computed" || record["view"] != "hall" {
		t.Errorf("Unexpected record: %v", record)
	}

	if record["hosts"] != float64(3) {
		t.Errorf("Expected hosts=3, got %v", record["hosts"])
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer

	log := New("warn", "text", &buf)
	log.Debug("hidden")

	if buf.Len() != 0 {
		t.Fatalf("Expected no output below warn, got %q", buf.String())
	}

	child := log.With("component", "loader")
	log.SetLevel("debug")
	child.Debug("visible")

	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("Expected child logger to follow level change, got %q", buf.String())
	}
}
