package input

import (
	"io"
	"slices"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
)

func drain(p Provider) []string {
	var items []string
	for {
		it, ok := p.Next()
		if !ok {
			return items
		}
		items = append(items, it)
	}
}

func TestSlice(t *testing.T) {
	p := Slice("a", "", "c")
	if Remaining(p) != 3 {
		t.Errorf("expected 3 remaining, got %d", Remaining(p))
	}

	if got := drain(p); !slices.Equal(got, []string{"a", "", "c"}) {
		t.Errorf("unexpected items %q", got)
	}
	if Remaining(p) != 0 {
		t.Errorf("expected 0 remaining, got %d", Remaining(p))
	}
	if _, ok := p.Next(); ok {
		t.Error("exhausted provider should stay exhausted")
	}
}

func TestLineProvider(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"lf", "1\ntrue\nhello\n", []string{"1", "true", "hello"}},
		{"crlf", "1\r\n2\r\n", []string{"1", "2"}},
		{"no trailing newline", "last", []string{"last"}},
		{"blank lines kept", "a\n\nb\n", []string{"a", "", "b"}},
		{"escapes decoded", `x\032y` + "\n", []string{"x y"}},
		{"spaces kept", "  padded  \n", []string{"  padded  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewLineProvider(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := drain(p); !slices.Equal(got, tt.expected) {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	cz, err := charmap.Windows1250.NewEncoder().String("Příliš žluťoučký kůň")
	if err != nil {
		t.Fatal(err)
	}
	jp, err := japanese.ShiftJIS.NewEncoder().String("こんにちは")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		charset  string
		input    string
		expected string
	}{
		{"default", "", "plain", "plain"},
		{"utf-8 bom", "utf-8", "\ufeffwith bom", "with bom"},
		{"utf8 alias", "UTF8", "ok", "ok"},
		{"windows-1250", "windows-1250", cz, "Příliš žluťoučký kůň"},
		{"cp1250 alias", "cp1250", cz, "Příliš žluťoučký kůň"},
		{"shift_jis", "shift_jis", jp, "こんにちは"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Decode(strings.NewReader(tt.input), tt.charset)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestDecodeUnknownEncoding(t *testing.T) {
	if _, err := Decode(strings.NewReader(""), "klingon-8"); err == nil {
		t.Error("expected error for unknown encoding")
	}
	if Supported("klingon-8") {
		t.Error("klingon-8 should not be supported")
	}
	if !Supported("") || !Supported("windows-1250") {
		t.Error("expected default and windows-1250 to be supported")
	}
}
