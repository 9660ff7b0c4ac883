package logging

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewHonoursLevelAndFormat(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "json")

	var buf bytes.Buffer
	logger := New(&buf, "test")
	logger.Info("hidden")
	logger.Warn("shown", "score", 7)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line written at warn level: %q", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"score":7`) {
		t.Fatalf("expected json warn line with score field, got %q", out)
	}
}

func TestOutputFallsBackWithoutFile(t *testing.T) {
	t.Setenv("LOG_FILE", "")

	var buf bytes.Buffer
	w, closeFn, err := Output(&buf)
	if err != nil {
		t.Fatalf("Output: %v", err)
	}
	defer closeFn()
	if w != &buf {
		t.Fatalf("Output without LOG_FILE should return the fallback writer")
	}
}

func TestOutputOpensFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	t.Setenv("LOG_FILE", path)

	w, closeFn, err := Output(nil)
	if err != nil {
		t.Fatalf("Output: %v", err)
	}
	if _, err := w.Write([]byte("line\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
