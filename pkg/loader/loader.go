// Package loader turns IPPcode21 source, in either the line-based text form
// or the XML form, into a validated instruction sequence.
package loader

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"ippvm/pkg/code"
)

// Format selects the source representation.
type Format int

const (
	FormatAuto Format = iota
	FormatText
	FormatXML
)

// ParseFormat maps a config or flag value to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "text", "src", "ippcode":
		return FormatText, nil
	case "xml":
		return FormatXML, nil
	default:
		return FormatAuto, fmt.Errorf("unknown source format %q", s)
	}
}

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatXML:
		return "xml"
	default:
		return "auto"
	}
}

// Process statuses reported by the loader.
const (
	StatusBadHeader    = 21
	StatusBadOpcode    = 22
	StatusBadSyntax    = 23
	StatusXMLMalformed = 31
	StatusXMLStructure = 32
	StatusArgumentKind = 53
)

// Error is a loading failure. Line is the source line (text form) or the
// instruction order (XML form); zero when unknown.
type Error struct {
	Status int
	Line   int
	Msg    string
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

func errorf(status, line int, format string, args ...any) *Error {
	return &Error{Status: status, Line: line, Msg: fmt.Sprintf(format, args...)}
}

// Load parses src in the given format. FormatAuto picks XML when the first
// non-blank byte is '<'.
func Load(src []byte, format Format) ([]code.Instruction, error) {
	if format == FormatAuto {
		format = Detect(src)
	}

	if format == FormatXML {
		return ParseXML(src)
	}
	return ParseText(string(src))
}

// Detect guesses the format of src
func Detect(src []byte) Format {
	trimmed := bytes.TrimLeft(src, " \t\r\n\ufeff")
	if len(trimmed) > 0 && trimmed[0] == '<' {
		return FormatXML
	}
	return FormatText
}

// decimal without leading zeros
var intLiteral = regexp.MustCompile(`^[+\-]?([1-9][0-9]*|0)$`)

// literal parses the value part of a constant of the given kind. It
// returns false when the text is not valid for that kind.
func literal(kind code.ArgKind, text string) (code.Argument, bool) {
	switch kind {
	case code.ArgInt:
		if !intLiteral.MatchString(text) {
			return code.Argument{}, false
		}
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return code.Argument{}, false
		}
		return code.Int(n), true

	case code.ArgBool:
		switch text {
		case "true":
			return code.Bool(true), true
		case "false":
			return code.Bool(false), true
		}
		return code.Argument{}, false

	case code.ArgNil:
		return code.Nil(), text == "nil"

	case code.ArgString:
		if !validString(text) {
			return code.Argument{}, false
		}
		return code.String(code.DecodeEscapes(text)), true
	}

	return code.Argument{}, false
}

// validString checks the escape discipline of a string literal: no
// whitespace, no '#', and every '\' starts a three-digit escape.
func validString(s string) bool {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\\':
			if i+3 >= len(s) {
				return false
			}
			for j := 1; j <= 3; j++ {
				if s[i+j] < '0' || s[i+j] > '9' {
					return false
				}
			}
			i += 3
		case c == '#', c == ' ', c == '\t', c == '\n', c == '\r', c == '\v', c == '\f':
			return false
		}
	}
	return true
}

// variable parses GF@name, LF@name or TF@name
func variable(text string) (code.Argument, bool) {
	prefix, name, ok := strings.Cut(text, "@")
	if !ok || !validName(name) {
		return code.Argument{}, false
	}

	scope, ok := code.LookupScope(prefix)
	if !ok {
		return code.Argument{}, false
	}

	return code.Var(scope, name), true
}

// validName checks the identifier grammar shared by variables and labels
func validName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case strings.IndexByte("_-$&%*!?", c) >= 0:
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// typeName checks a READ type argument
func typeName(s string) bool {
	switch s {
	case "int", "bool", "string", "nil":
		return true
	}
	return false
}
