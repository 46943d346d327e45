package lexer

type Lexer struct {
	input    string // input string to be tokenized
	length   int    // length of the input string
	position int    // current position in the input string
	line     int    // current line number for error reporting
	column   int    // current column number for error reporting
}

// Create a new lexer instance
func NewLexer(s string) *Lexer {
	return &Lexer{
		input:    s,
		length:   len(s),
		position: 0,
		line:     1,
		column:   1,
	}
}

// Get the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipBlanks()

	// End of input
	if l.position >= l.length {
		return NewToken(EOF, "", l.currentPosition())
	}

	if l.input[l.position] == '\n' {
		tok := NewToken(NEWLINE, "\n", l.currentPosition())
		l.advance(1)
		return tok
	}

	pos := l.currentPosition()
	start := l.position
	for l.position < l.length && !isSeparator(l.input[l.position]) {
		l.advance(1)
	}

	lexeme := l.input[start:l.position]
	tokenType, _ := MatchWord(lexeme)

	return NewToken(tokenType, lexeme, pos)
}

// View next token without advancing the position
func (l *Lexer) Peek() Token {
	// save state
	cpos := l.position
	cline := l.line
	ccol := l.column

	token := l.NextToken()

	// restore state
	l.position = cpos
	l.line = cline
	l.column = ccol

	return token
}

// Line collects the tokens up to the next newline. It returns false once the
// input is exhausted and no tokens remain.
func (l *Lexer) Line() ([]Token, bool) {
	var toks []Token
	for {
		tok := l.NextToken()
		switch tok.Type {
		case EOF:
			return toks, len(toks) > 0
		case NEWLINE:
			return toks, true
		default:
			toks = append(toks, tok)
		}
	}
}

// Skip whitespace other than newlines, and comments up to the newline
func (l *Lexer) skipBlanks() {
	for l.position < l.length {
		ch := l.input[l.position]

		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\v' || ch == '\f' {
			l.column++
			l.position++
		} else if ch == '#' {
			for l.position < l.length && l.input[l.position] != '\n' {
				l.column++
				l.position++
			}
		} else {
			break
		}
	}
}

// Advance the lexer position by n characters
func (l *Lexer) advance(n int) {
	for range n {
		if l.position >= l.length {
			break
		}

		if l.input[l.position] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}

		l.position++
	}
}

// Get the current position of the lexer
func (l *Lexer) currentPosition() Position {
	return Position{
		Line:   l.line,
		Column: l.column,
		Offset: l.position,
	}
}
