package color

import (
	"strings"
	"testing"
)

func TestPlainWhenDisabled(t *testing.T) {
	EnableColor(false)
	defer EnableColor(false)

	if got := RedText("boom"); got != "boom" {
		t.Errorf("expected plain text, got %q", got)
	}
	if got := Error("bad"); got != "Error: bad" {
		t.Errorf("expected %q, got %q", "Error: bad", got)
	}

	got := ErrorWithPosition("instruction", 3, "undefined variable", "WRITE GF@x")
	expected := "Error at instruction 3: undefined variable\n  WRITE GF@x"
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestColoredWhenEnabled(t *testing.T) {
	EnableColor(true)
	defer EnableColor(false)

	if !IsColorEnabled() {
		t.Fatal("expected color to be enabled")
	}

	got := GreenText("ok")
	if got == "ok" || !strings.Contains(got, "ok") || !strings.HasPrefix(got, "\x1b[") {
		t.Errorf("expected ANSI-wrapped text, got %q", got)
	}
}
