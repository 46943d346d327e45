// Package input supplies the values consumed by READ.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"ippvm/pkg/code"
)

// Provider yields pre-tokenized input items front to back. The second
// result is false once the input is exhausted.
type Provider interface {
	Next() (string, bool)
}

type sliceProvider struct {
	items []string
	pos   int
}

// Slice returns a provider over a fixed list of items
func Slice(items ...string) Provider {
	return &sliceProvider{items: items}
}

func (p *sliceProvider) Next() (string, bool) {
	if p.pos >= len(p.items) {
		return "", false
	}

	item := p.items[p.pos]
	p.pos++
	return item, true
}

// Remaining returns how many items a provider built by Slice or
// NewLineProvider still holds
func Remaining(p Provider) int {
	if sp, ok := p.(*sliceProvider); ok {
		return len(sp.items) - sp.pos
	}
	return -1
}

// NewLineProvider reads r to the end and yields one item per line. Line
// endings (LF or CRLF) are stripped and \ddd escapes decoded.
func NewLineProvider(r io.Reader) (Provider, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var items []string
	for sc.Scan() {
		items = append(items, code.DecodeEscapes(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	return Slice(items...), nil
}

// Decode wraps r so that it yields UTF-8 from the named charset. An empty
// name or any UTF-8 alias returns r with only a leading BOM removed.
func Decode(r io.Reader, charset string) (io.Reader, error) {
	name := strings.TrimSpace(charset)
	if name == "" {
		name = "utf-8"
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown input encoding %q: %w", charset, err)
	}

	if n, _ := htmlindex.Name(enc); n == "utf-8" {
		return transform.NewReader(r, unicode.BOMOverride(transform.Nop)), nil
	}

	return transform.NewReader(r, enc.NewDecoder()), nil
}

// Supported reports whether Decode accepts the charset name
func Supported(charset string) bool {
	if strings.TrimSpace(charset) == "" {
		return true
	}
	_, err := htmlindex.Get(charset)
	return err == nil
}
