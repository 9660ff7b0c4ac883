package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetEnvFallback(t *testing.T) {
	t.Setenv("KEDUSHA_TEST_SET", "value")

	if got := GetEnv("KEDUSHA_TEST_SET", "fallback"); got != "value" {
		t.Fatalf("GetEnv set = %q, want value", got)
	}
	if got := GetEnv("KEDUSHA_TEST_UNSET", "fallback"); got != "fallback" {
		t.Fatalf("GetEnv unset = %q, want fallback", got)
	}
}

func TestTypedGetters(t *testing.T) {
	t.Setenv("KEDUSHA_INT", " 42 ")
	t.Setenv("KEDUSHA_BAD_INT", "forty")
	t.Setenv("KEDUSHA_BOOL", "on")
	t.Setenv("KEDUSHA_DURATION", "800ms")

	if got := GetEnvInt("KEDUSHA_INT", 1); got != 42 {
		t.Errorf("GetEnvInt = %d, want 42", got)
	}
	if got := GetEnvInt("KEDUSHA_BAD_INT", 7); got != 7 {
		t.Errorf("GetEnvInt malformed = %d, want fallback 7", got)
	}
	if got := GetEnvBool("KEDUSHA_BOOL", false); !got {
		t.Errorf("GetEnvBool = false, want true")
	}
	if got := GetEnvBool("KEDUSHA_BOOL_UNSET", true); !got {
		t.Errorf("GetEnvBool unset = false, want fallback true")
	}
	if got := GetEnvDuration("KEDUSHA_DURATION", time.Second); got != 800*time.Millisecond {
		t.Errorf("GetEnvDuration = %v, want 800ms", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("KEDUSHA_FROM_FILE=loaded\nKEDUSHA_PRESET=file\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("KEDUSHA_PRESET", "process")
	// Registers cleanup so the loaded value does not leak into other tests.
	t.Setenv("KEDUSHA_FROM_FILE", "")
	os.Unsetenv("KEDUSHA_FROM_FILE")

	if err := Load(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := os.Getenv("KEDUSHA_FROM_FILE"); got != "loaded" {
		t.Errorf("KEDUSHA_FROM_FILE = %q, want loaded", got)
	}
	if got := os.Getenv("KEDUSHA_PRESET"); got != "process" {
		t.Errorf("KEDUSHA_PRESET = %q, existing variables must not be overridden", got)
	}
}
