package interpreter

import (
	"strconv"

	"ippvm/pkg/code"
)

// Type is the runtime type of a value held by a variable or the operand stack.
type Type int

const (
	TypeUnset Type = iota // declared but never assigned
	TypeInt
	TypeBool
	TypeString
	TypeNil
)

// String returns the type name TYPE reports; TypeUnset is the empty string.
func (t Type) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	case TypeNil:
		return "nil"
	default:
		return ""
	}
}

// ParseType maps a type name used by READ to its runtime type
func ParseType(name string) (Type, bool) {
	switch name {
	case "int":
		return TypeInt, true
	case "bool":
		return TypeBool, true
	case "string":
		return TypeString, true
	case "nil":
		return TypeNil, true
	default:
		return TypeUnset, false
	}
}

// Value represents a dynamically-typed value in the interpreter.
type Value struct {
	Type Type
	Int  int64
	Bool bool
	Str  string
}

// String renders the value the way WRITE emits it.
func (v Value) String() string {
	switch v.Type {
	case TypeInt:
		return strconv.FormatInt(v.Int, 10)
	case TypeBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case TypeString:
		return v.Str
	default:
		return ""
	}
}

// IsSet reports whether the value was ever assigned.
func (v Value) IsSet() bool {
	return v.Type != TypeUnset
}

// equal compares two values of the same type.
func (v Value) equal(o Value) bool {
	switch v.Type {
	case TypeInt:
		return v.Int == o.Int
	case TypeBool:
		return v.Bool == o.Bool
	case TypeString:
		return v.Str == o.Str
	default:
		return true
	}
}

// less orders two values of the same non-nil type.
func (v Value) less(o Value) bool {
	switch v.Type {
	case TypeInt:
		return v.Int < o.Int
	case TypeBool:
		return !v.Bool && o.Bool
	case TypeString:
		return v.Str < o.Str
	default:
		return false
	}
}

// NewInt creates a new integer Value.
func NewInt(i int64) Value {
	return Value{Type: TypeInt, Int: i}
}

// NewBool creates a new boolean Value.
func NewBool(b bool) Value {
	return Value{Type: TypeBool, Bool: b}
}

// NewString creates a new string Value.
func NewString(s string) Value {
	return Value{Type: TypeString, Str: s}
}

// Nil is the single nil value.
var Nil = Value{Type: TypeNil}

// literal converts a literal argument into its value.
func literal(a code.Argument) (Value, bool) {
	switch a.Kind {
	case code.ArgInt:
		return NewInt(a.Int), true
	case code.ArgBool:
		return NewBool(a.Bool), true
	case code.ArgString:
		return NewString(a.Str), true
	case code.ArgNil:
		return Nil, true
	default:
		return Value{}, false
	}
}
