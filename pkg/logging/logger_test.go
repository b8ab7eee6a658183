package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("log line is not valid JSON: %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestJSONLogger_OneObjectPerLine(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLogger(&buf, DebugLevel)

	log.Debug("first")
	log.Info("second", Int("n", 7))
	log.Error("third", Error(errors.New("boom")))

	lines := decodeLines(t, &buf)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[0]["level"] != "DEBUG" || lines[1]["level"] != "INFO" || lines[2]["level"] != "ERROR" {
		t.Errorf("levels wrong: %v", lines)
	}
	fields := lines[1]["fields"].(map[string]any)
	if fields["n"] != float64(7) {
		t.Errorf("field n = %v", fields["n"])
	}
	errFields := lines[2]["fields"].(map[string]any)
	if errFields["error"] != "boom" {
		t.Errorf("error field = %v", errFields["error"])
	}
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLogger(&buf, WarnLevel)

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("visible")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}

	log.SetLevel(DebugLevel)
	log.Debug("now visible")
	if len(decodeLines(t, &buf)) != 2 {
		t.Error("SetLevel did not take effect")
	}
}

func TestJSONLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	base := NewJSONLogger(&buf, InfoLevel)
	child := base.With(Component("resolver"), String("build", "abc"))

	child.Info("hello", Int("n", 1))
	base.Info("plain")

	lines := decodeLines(t, &buf)
	fields := lines[0]["fields"].(map[string]any)
	if fields["component"] != "resolver" || fields["build"] != "abc" || fields["n"] != float64(1) {
		t.Errorf("child fields wrong: %v", fields)
	}
	// Parent must not inherit the child's fields.
	if _, ok := lines[1]["fields"]; ok {
		t.Errorf("parent logger gained fields: %v", lines[1])
	}
}

func TestJSONLogger_CallSiteOverridesPreset(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLogger(&buf, InfoLevel).With(String("k", "preset"))
	log.Info("msg", String("k", "call"))

	lines := decodeLines(t, &buf)
	if lines[0]["fields"].(map[string]any)["k"] != "call" {
		t.Errorf("call-site field should win: %v", lines[0])
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DebugLevel},
		{"DEBUG", DebugLevel},
		{"info", InfoLevel},
		{"WARNING", WarnLevel},
		{"error", ErrorLevel},
		{"nonsense", InfoLevel},
		{"", InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFieldConstructors(t *testing.T) {
	if f := Duration("d", 1500*time.Millisecond); f.Key != "d" || f.Value != "1.5s" {
		t.Errorf("Duration field = %+v", f)
	}
	if f := Error(nil); f.Value != nil {
		t.Errorf("nil error should produce nil value, got %+v", f)
	}
	if f := Latency(2 * time.Second); f.Key != "latency" {
		t.Errorf("Latency key = %q", f.Key)
	}
	if f := RecordID(42); f.Key != "record_id" || f.Value != int64(42) {
		t.Errorf("RecordID field = %+v", f)
	}
}

func TestTimedOperation(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLogger(&buf, InfoLevel)

	op := StartTimer(log, "build", String("source", "memory"))
	if op.Elapsed() < 0 {
		t.Error("Elapsed went backwards")
	}
	op.End(Int("nodes", 10))

	lines := decodeLines(t, &buf)
	fields := lines[0]["fields"].(map[string]any)
	if fields["source"] != "memory" || fields["nodes"] != float64(10) {
		t.Errorf("timer fields wrong: %v", fields)
	}
	if _, ok := fields["latency"]; !ok {
		t.Error("latency field missing")
	}
}
