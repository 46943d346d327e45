package code

import (
	"fmt"
	"strings"
)

// DecodeEscapes replaces every \ddd sequence with the code point ddd.
// A backslash not followed by three digits is kept as-is.
func DecodeEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) && isDigit(s[i+1]) && isDigit(s[i+2]) && isDigit(s[i+3]) {
			n := int(s[i+1]-'0')*100 + int(s[i+2]-'0')*10 + int(s[i+3]-'0')
			sb.WriteRune(rune(n))
			i += 3
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// EncodeEscapes is the inverse of DecodeEscapes for the characters the
// source form cannot carry literally: whitespace, control characters, '#'
// and '\'.
func EncodeEscapes(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r <= 32 || r == '#' || r == '\\' {
			fmt.Fprintf(&sb, `\%03d`, r)
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
