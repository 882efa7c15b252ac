package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func decodeEntry(t *testing.T, line string) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("Log line is not valid JSON: %v\nline: %s", err, line)
	}
	return entry
}

func TestJSONLogger_WritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	logger.Info("graph built", Int("nodes", 7), String("build_id", "abc"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected one log line, got %d", len(lines))
	}
	entry := decodeEntry(t, lines[0])
	if entry["level"] != "INFO" {
		t.Errorf("Expected level INFO, got %v", entry["level"])
	}
	if entry["msg"] != "graph built" {
		t.Errorf("Expected message preserved, got %v", entry["msg"])
	}
	fields := entry["fields"].(map[string]any)
	if fields["nodes"] != float64(7) || fields["build_id"] != "abc" {
		t.Errorf("Expected fields preserved, got %v", fields)
	}
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warn("kept")
	logger.Error("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 log lines above the threshold, got %d: %v", len(lines), lines)
	}
}

func TestJSONLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel).With(Component("builder"))

	logger.Info("pass done", Int("edges", 3))

	entry := decodeEntry(t, strings.TrimSpace(buf.String()))
	fields := entry["fields"].(map[string]any)
	if fields["component"] != "builder" {
		t.Errorf("Expected inherited component field, got %v", fields)
	}
	if fields["edges"] != float64(3) {
		t.Errorf("Expected call-site field alongside inherited ones, got %v", fields)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   DebugLevel,
		"INFO":    InfoLevel,
		"warning": WarnLevel,
		"ERROR":   ErrorLevel,
		"bogus":   InfoLevel,
		"":        InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()

	// Must not panic and With must stay chainable.
	logger.With(String("k", "v")).Error("ignored")
}
