package lexer_test

import (
	"ippvm/pkg/lexer"
	"testing"
)

func TestTokens(t *testing.T) {
	input := ".IPPcode21\n" + "DEFVAR GF@x\n" + "MOVE GF@x int@-5\n" + "\tWRITE   string@a\\032b\r\n" + "JUMP end\n"
	mylexer := lexer.NewLexer(input)

	expectedTokens := []lexer.TokenType{
		lexer.HEADER, lexer.NEWLINE,
		lexer.IDENT, lexer.VAR, lexer.NEWLINE,
		lexer.IDENT, lexer.VAR, lexer.CONST, lexer.NEWLINE,
		lexer.IDENT, lexer.CONST, lexer.NEWLINE,
		lexer.IDENT, lexer.IDENT, lexer.NEWLINE,
		lexer.EOF,
	}

	for i, expected := range expectedTokens {
		token := mylexer.NextToken()
		if token.Type != expected {
			t.Errorf("Token %d: expected %s, got %s", i, expected, token.Type)
		}
	}
}

func TestTokenPositions(t *testing.T) {
	mylexer := lexer.NewLexer(".IPPcode21\n  MOVE GF@x nil@nil")

	mylexer.NextToken() // header
	mylexer.NextToken() // newline

	tok := mylexer.NextToken()
	if tok.Lexeme != "MOVE" || tok.Pos.Line != 2 || tok.Pos.Column != 3 {
		t.Errorf("expected MOVE at 2:3, got %s", tok)
	}

	tok = mylexer.NextToken()
	if tok.Lexeme != "GF@x" || tok.Pos.Column != 8 {
		t.Errorf("expected GF@x at 2:8, got %s", tok)
	}
}

func TestPeekDoesNotAdvance(t *testing.T) {
	mylexer := lexer.NewLexer("LABEL loop")

	peeked := mylexer.Peek()
	next := mylexer.NextToken()
	if peeked != next {
		t.Errorf("Peek returned %s, NextToken returned %s", peeked, next)
	}
}

func TestLine(t *testing.T) {
	mylexer := lexer.NewLexer("CREATEFRAME\n\nPUSHS int@1 # push\n")

	wantCounts := []int{1, 0, 2}
	for i, want := range wantCounts {
		toks, ok := mylexer.Line()
		if !ok {
			t.Fatalf("line %d: unexpected end of input", i+1)
		}
		if len(toks) != want {
			t.Errorf("line %d: expected %d tokens, got %d", i+1, want, len(toks))
		}
	}

	if _, ok := mylexer.Line(); ok {
		t.Errorf("expected end of input")
	}
}
