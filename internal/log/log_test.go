package log

import (
	"bytes"
	"strings"
	"testing"
)

func captureLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	original := Logger()
	ReplaceLogger(newLogger(buf))
	t.Cleanup(func() {
		ReplaceLogger(original)
	})
	return buf
}

func TestInfoProducesLogfmtWithTimestamp(t *testing.T) {
	buf := captureLogger(t)

	Info("hello", "theme", "deep-night")

	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatalf("expected log output, got empty string")
	}
	for _, want := range []string{"time=", "level=info", "msg=hello", "theme=deep-night", "prefix=ambience"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in log line, got %q", want, line)
		}
	}
}

func TestSetLevelFiltersDebug(t *testing.T) {
	buf := captureLogger(t)

	if err := SetLevel("error"); err != nil {
		t.Fatalf("SetLevel returned error: %v", err)
	}
	Debug("hidden")
	Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below error level, got %q", buf.String())
	}

	if err := SetLevel("DEBUG"); err != nil {
		t.Fatalf("SetLevel returned error: %v", err)
	}
	Debug("visible")
	if !strings.Contains(buf.String(), "msg=visible") {
		t.Fatalf("expected debug output after lowering level, got %q", buf.String())
	}
}

func TestSetLevelRejectsUnknown(t *testing.T) {
	if err := SetLevel("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestReplaceLoggerRejectsNil(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for nil logger")
		}
	}()
	ReplaceLogger(nil)
}
