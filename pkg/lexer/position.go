package lexer

import "fmt"

// Position locates a token in the source. Line and Column are 1-based,
// Offset is the byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Returns the line:column form used in diagnostics
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
