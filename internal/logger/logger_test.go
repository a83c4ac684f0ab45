package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDebugModeWritesToStdout(t *testing.T) {
	log := New("debug", Options{})
	if log == nil {
		t.Fatal("expected logger instance in debug mode")
	}
	log.Debug("debug logger smoke test")
}

func TestNewReleaseModeCreatesLogFile(t *testing.T) {
	dir := t.TempDir()
	log := New("release", Options{Dir: dir, Filename: "test.log"})
	if log == nil {
		t.Fatal("expected logger instance in release mode")
	}
	log.Info("release logger smoke test")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(dir, "test.log")); err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
}

func TestZReturnsFallbackWhenUninitialized(t *testing.T) {
	previous := L
	L = nil
	defer func() { L = previous }()

	if Z() == nil {
		t.Fatal("expected fallback logger when global is nil")
	}
}

func TestInitSetsGlobal(t *testing.T) {
	previous := L
	defer func() { L = previous }()

	log := Init("debug", Options{})
	if log == nil || L != log {
		t.Fatal("expected Init to set global logger")
	}
	Infow("init smoke test", "mode", "debug")
}
