package code

import (
	"fmt"
	"strings"
)

// ArgKind is the category tag carried by an instruction argument.
type ArgKind int

const (
	ArgVar ArgKind = iota
	ArgInt
	ArgBool
	ArgString
	ArgNil
	ArgLabel
	ArgType
)

var argKindNames = [...]string{
	ArgVar:    "var",
	ArgInt:    "int",
	ArgBool:   "bool",
	ArgString: "string",
	ArgNil:    "nil",
	ArgLabel:  "label",
	ArgType:   "type",
}

func (k ArgKind) String() string {
	if k < 0 || int(k) >= len(argKindNames) {
		return "unknown"
	}
	return argKindNames[k]
}

// IsLiteral reports whether k is one of the runtime literal kinds
func (k ArgKind) IsLiteral() bool {
	return k == ArgInt || k == ArgBool || k == ArgString || k == ArgNil
}

// LookupArgKind maps an XML type attribute to its kind
func LookupArgKind(name string) (ArgKind, bool) {
	for k, n := range argKindNames {
		if n == name {
			return ArgKind(k), true
		}
	}
	return 0, false
}

// Scope selects one of the three frame roles.
type Scope int

const (
	ScopeGlobal Scope = iota
	ScopeLocal
	ScopeTemporary
)

func (s Scope) String() string {
	switch s {
	case ScopeGlobal:
		return "GF"
	case ScopeLocal:
		return "LF"
	case ScopeTemporary:
		return "TF"
	default:
		return "??"
	}
}

// LookupScope maps a frame prefix (GF, LF, TF) to its scope
func LookupScope(prefix string) (Scope, bool) {
	switch prefix {
	case "GF":
		return ScopeGlobal, true
	case "LF":
		return ScopeLocal, true
	case "TF":
		return ScopeTemporary, true
	default:
		return 0, false
	}
}

// Argument is one typed operand of an instruction.
//
// Name holds the variable, label or type name. Literal payloads live in
// Int, Bool and Str depending on Kind; Str is already escape-decoded.
type Argument struct {
	Kind  ArgKind
	Scope Scope
	Name  string
	Int   int64
	Bool  bool
	Str   string
}

func Var(scope Scope, name string) Argument {
	return Argument{Kind: ArgVar, Scope: scope, Name: name}
}

func Int(n int64) Argument {
	return Argument{Kind: ArgInt, Int: n}
}

func Bool(b bool) Argument {
	return Argument{Kind: ArgBool, Bool: b}
}

func String(s string) Argument {
	return Argument{Kind: ArgString, Str: s}
}

func Nil() Argument {
	return Argument{Kind: ArgNil}
}

func Label(name string) Argument {
	return Argument{Kind: ArgLabel, Name: name}
}

func Type(name string) Argument {
	return Argument{Kind: ArgType, Name: name}
}

// String renders the argument in source form
func (a Argument) String() string {
	switch a.Kind {
	case ArgVar:
		return a.Scope.String() + "@" + a.Name
	case ArgInt:
		return fmt.Sprintf("int@%d", a.Int)
	case ArgBool:
		return fmt.Sprintf("bool@%t", a.Bool)
	case ArgString:
		return "string@" + EncodeEscapes(a.Str)
	case ArgNil:
		return "nil@nil"
	default:
		return a.Name
	}
}

// Instruction is an opcode plus its ordered arguments. Line is the source
// line (text form) or order attribute (XML form), kept for diagnostics.
type Instruction struct {
	Op   Opcode
	Args []Argument
	Line int
}

// New builds an instruction without source position
func New(op Opcode, args ...Argument) Instruction {
	return Instruction{Op: op, Args: args}
}

// Arg returns the n-th argument, 1-based like the source form
func (i Instruction) Arg(n int) Argument {
	return i.Args[n-1]
}

// String returns a string representation of the instruction
func (i Instruction) String() string {
	var sb strings.Builder
	sb.WriteString(i.Op.String())
	for _, a := range i.Args {
		sb.WriteByte(' ')
		sb.WriteString(a.String())
	}
	return sb.String()
}
