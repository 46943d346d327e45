package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInitLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"error", log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			if err := InitWriter(&buf, tt.level, true); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := log.GetLevel(); got != tt.expected {
				t.Errorf("expected level %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWriter(&buf, "chatty", true); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestInitWritesPrefixed(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWriter(&buf, "info", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	log.Info("loaded", "instructions", 4)
	log.Debug("hidden")

	out := buf.String()
	if !strings.Contains(out, "IPPVM") || !strings.Contains(out, "instructions=4") {
		t.Errorf("unexpected log output: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message leaked at info level: %q", out)
	}
}
