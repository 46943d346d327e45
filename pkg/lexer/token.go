package lexer

import (
	"fmt"
)

type TokenType int

type Token struct {
	Type   TokenType // Type of the token
	Lexeme string    // Actual string from source code
	Pos    Position  // Position in source code
}

// NewToken creates a new Token instance
func NewToken(tokenType TokenType, lexeme string, pos Position) Token {
	return Token{
		Type:   tokenType,
		Lexeme: lexeme,
		Pos:    pos,
	}
}

const (
	EOF     TokenType = iota // End of file
	NEWLINE                  // end of a source line
	HEADER                   // .IPPcode21
	VAR                      // GF@name, LF@name, TF@name
	CONST                    // int@.., bool@.., string@.., nil@nil
	IDENT                    // opcode, label or type name
	ILLEGAL                  // a word matching none of the above
)

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	NEWLINE: "NEWLINE",
	HEADER:  "HEADER",
	VAR:     "VAR",
	CONST:   "CONST",
	IDENT:   "IDENT",
	ILLEGAL: "ILLEGAL",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("%s(%q) at %d:%d", t.Type, t.Lexeme, t.Pos.Line, t.Pos.Column)
}
