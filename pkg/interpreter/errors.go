package interpreter

import (
	"errors"
	"fmt"

	"ippvm/pkg/code"
)

// Kind classifies a runtime failure. Every failing precondition maps to
// exactly one kind, and every kind to one process status.
type Kind int

const (
	KindDuplicateLabel Kind = iota + 1
	KindUndefinedLabel
	KindDuplicateVariable
	KindUndefinedVariable
	KindMissingFrame
	KindMissingValue
	KindTypeMismatch
	KindOperandValue    // bad EXIT code, division by zero
	KindStringOperation // string indexing, SETCHAR, INT2CHAR
)

// Process statuses for runtime failures.
const (
	StatusSemantic        = 52
	StatusTypeMismatch    = 53
	StatusUndefinedVar    = 54
	StatusMissingFrame    = 55
	StatusMissingValue    = 56
	StatusOperandValue    = 57
	StatusStringOperation = 58
)

var (
	ErrDuplicateLabel    = errors.New("duplicate label")
	ErrUndefinedLabel    = errors.New("undefined label")
	ErrDuplicateVariable = errors.New("duplicate variable")
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrMissingFrame      = errors.New("missing frame")
	ErrMissingValue      = errors.New("missing value")
	ErrTypeMismatch      = errors.New("type mismatch")
	ErrOperandValue      = errors.New("bad operand value")
	ErrStringOperation   = errors.New("bad string operation")

	ErrMaxStepsExceeded = errors.New("maximum steps exceeded")
	ErrUnknownOpcode    = errors.New("unknown opcode")
)

func (k Kind) sentinel() error {
	switch k {
	case KindDuplicateLabel:
		return ErrDuplicateLabel
	case KindUndefinedLabel:
		return ErrUndefinedLabel
	case KindDuplicateVariable:
		return ErrDuplicateVariable
	case KindUndefinedVariable:
		return ErrUndefinedVariable
	case KindMissingFrame:
		return ErrMissingFrame
	case KindMissingValue:
		return ErrMissingValue
	case KindTypeMismatch:
		return ErrTypeMismatch
	case KindOperandValue:
		return ErrOperandValue
	case KindStringOperation:
		return ErrStringOperation
	default:
		return nil
	}
}

func (k Kind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return "unknown error"
}

// Status returns the process exit status for the kind
func (k Kind) Status() int {
	switch k {
	case KindDuplicateLabel, KindUndefinedLabel, KindDuplicateVariable:
		return StatusSemantic
	case KindTypeMismatch:
		return StatusTypeMismatch
	case KindUndefinedVariable:
		return StatusUndefinedVar
	case KindMissingFrame:
		return StatusMissingFrame
	case KindMissingValue:
		return StatusMissingValue
	case KindOperandValue:
		return StatusOperandValue
	case KindStringOperation:
		return StatusStringOperation
	default:
		return 99
	}
}

// Error is a runtime failure. PC is the 1-based index of the failing
// instruction; zero when the failure happened outside the dispatch loop.
type Error struct {
	Kind Kind
	Op   code.Opcode
	PC   int
	Msg  string
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: -1, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.PC > 0 {
		return fmt.Sprintf("%s at instruction %d (%s): %s", e.Kind, e.PC, e.Op, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap exposes the kind sentinel so errors.Is works on kinds.
func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}

// Status returns the process status carried by err: 0 for nil, 99 when
// err is not a runtime error.
func Status(err error) int {
	if err == nil {
		return 0
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind.Status()
	}
	return 99
}
