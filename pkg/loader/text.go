package loader

import (
	"strings"

	"ippvm/pkg/code"
	"ippvm/pkg/lexer"
)

// ParseText parses the line-based source form: a .IPPcode21 header line
// followed by one instruction per line, with # comments.
func ParseText(src string) ([]code.Instruction, error) {
	l := lexer.NewLexer(src)

	// header is the first non-empty line
	var header []lexer.Token
	for {
		toks, ok := l.Line()
		if !ok {
			return nil, errorf(StatusBadHeader, 0, "missing .IPPcode21 header")
		}
		if len(toks) > 0 {
			header = toks
			break
		}
	}

	if len(header) != 1 || header[0].Type != lexer.HEADER {
		return nil, errorf(StatusBadHeader, header[0].Pos.Line, "invalid header %q", joinLexemes(header))
	}

	var program []code.Instruction
	for {
		toks, ok := l.Line()
		if !ok {
			break
		}
		if len(toks) == 0 {
			continue
		}

		in, err := parseLine(toks)
		if err != nil {
			return nil, err
		}
		program = append(program, in)
	}

	return program, nil
}

func parseLine(toks []lexer.Token) (code.Instruction, error) {
	line := toks[0].Pos.Line

	op, ok := code.LookupOpcode(toks[0].Lexeme)
	if toks[0].Type != lexer.IDENT || !ok {
		return code.Instruction{}, errorf(StatusBadOpcode, line, "unknown opcode %q", toks[0].Lexeme)
	}

	params := op.Params()
	args := toks[1:]
	if len(args) != len(params) {
		return code.Instruction{}, errorf(StatusBadSyntax, line, "%s expects %d arguments, got %d", op, len(params), len(args))
	}

	in := code.Instruction{Op: op, Args: make([]code.Argument, len(params)), Line: line}
	for n, p := range params {
		a, ok := parseWord(p, args[n])
		if !ok {
			return code.Instruction{}, errorf(StatusBadSyntax, line, "argument %d of %s: %q is not a valid %s", n+1, op, args[n].Lexeme, p)
		}
		in.Args[n] = a
	}

	return in, nil
}

// parseWord converts one token into an argument of the expected category
func parseWord(p code.Param, tok lexer.Token) (code.Argument, bool) {
	switch {
	case tok.Type == lexer.VAR && (p == code.ParamVar || p == code.ParamSymb):
		return variable(tok.Lexeme)

	case tok.Type == lexer.CONST && p == code.ParamSymb:
		prefix, value, _ := strings.Cut(tok.Lexeme, "@")
		kind, ok := code.LookupArgKind(prefix)
		if !ok || !kind.IsLiteral() {
			return code.Argument{}, false
		}
		return literal(kind, value)

	case tok.Type == lexer.IDENT && p == code.ParamLabel:
		return code.Label(tok.Lexeme), true

	case tok.Type == lexer.IDENT && p == code.ParamType && typeName(tok.Lexeme):
		return code.Type(tok.Lexeme), true
	}

	return code.Argument{}, false
}

func joinLexemes(toks []lexer.Token) string {
	words := make([]string, len(toks))
	for i, t := range toks {
		words[i] = t.Lexeme
	}
	return strings.Join(words, " ")
}
