package logger

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("loud", ""); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewWithFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "terminal.log")
	l, err := New("debug", file)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Info("cart changed", zap.Int("lines", 2))
	l.Sync()
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Info("ignored")
	l.Error("ignored")
	if l.Zap() == nil {
		t.Fatal("expected nop logger")
	}
}
