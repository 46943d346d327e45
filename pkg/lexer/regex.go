package lexer

import (
	"regexp"
)

const namePattern = `[A-Za-z_\-$&%*!?][0-9A-Za-z_\-$&%*!?]*`

// Word regex patterns; each must match the whole word
var tokenRegexes = map[TokenType]*regexp.Regexp{
	HEADER: regexp.MustCompile(`(?i)^\.ippcode21$`),
	VAR:    regexp.MustCompile(`^(GF|LF|TF)@` + namePattern + `$`),
	CONST:  regexp.MustCompile(`^(int@[+\-]?\d+|bool@(true|false)|string@([^\s#\\]|\\\d{3})*|nil@nil)$`),
	IDENT:  regexp.MustCompile(`^` + namePattern + `$`),
}

// Token precedence order for matching
var tokenPrecedenceOrder = []TokenType{
	HEADER, VAR, CONST, IDENT,
}

// MatchWord classifies a whitespace-delimited word
func MatchWord(s string) (TokenType, bool) {
	if s == "" {
		return EOF, false
	}

	for _, tokenType := range tokenPrecedenceOrder {
		if regex, ok := tokenRegexes[tokenType]; ok {
			if regex.MatchString(s) {
				return tokenType, true
			}
		}
	}

	return ILLEGAL, false
}

// Check if a byte ends a word
func isSeparator(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f' || b == '#'
}
