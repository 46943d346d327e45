package code

import "strings"

type Opcode int

// List of IPPcode21 operations
const (
	OpMove Opcode = iota
	OpCreateFrame
	OpPushFrame
	OpPopFrame
	OpDefVar
	OpCall
	OpReturn
	OpPushs
	OpPops
	OpAdd
	OpSub
	OpMul
	OpIDiv
	OpLt
	OpGt
	OpEq
	OpAnd
	OpOr
	OpNot
	OpInt2Char
	OpStri2Int
	OpRead
	OpWrite
	OpConcat
	OpStrlen
	OpGetChar
	OpSetChar
	OpType
	OpLabel
	OpJump
	OpJumpIfEq
	OpJumpIfNeq
	OpExit
	OpDprint
	OpBreak

	opcodeCount
)

// Param is the static category an opcode expects for one argument position.
type Param int

const (
	ParamVar   Param = iota // variable reference
	ParamSymb                // variable reference or literal constant
	ParamLabel               // label name
	ParamType                // type name
)

type signature struct {
	name   string
	params []Param
}

// shorthands for the signature table
const (
	pv = ParamVar
	ps = ParamSymb
	pl = ParamLabel
	pt = ParamType
)

var signatures = [opcodeCount]signature{
	OpMove:        {"MOVE", []Param{pv, ps}},
	OpCreateFrame: {"CREATEFRAME", nil},
	OpPushFrame:   {"PUSHFRAME", nil},
	OpPopFrame:    {"POPFRAME", nil},
	OpDefVar:      {"DEFVAR", []Param{pv}},
	OpCall:        {"CALL", []Param{pl}},
	OpReturn:      {"RETURN", nil},
	OpPushs:       {"PUSHS", []Param{ps}},
	OpPops:        {"POPS", []Param{pv}},
	OpAdd:         {"ADD", []Param{pv, ps, ps}},
	OpSub:         {"SUB", []Param{pv, ps, ps}},
	OpMul:         {"MUL", []Param{pv, ps, ps}},
	OpIDiv:        {"IDIV", []Param{pv, ps, ps}},
	OpLt:          {"LT", []Param{pv, ps, ps}},
	OpGt:          {"GT", []Param{pv, ps, ps}},
	OpEq:          {"EQ", []Param{pv, ps, ps}},
	OpAnd:         {"AND", []Param{pv, ps, ps}},
	OpOr:          {"OR", []Param{pv, ps, ps}},
	OpNot:         {"NOT", []Param{pv, ps}},
	OpInt2Char:    {"INT2CHAR", []Param{pv, ps}},
	OpStri2Int:    {"STRI2INT", []Param{pv, ps, ps}},
	OpRead:        {"READ", []Param{pv, pt}},
	OpWrite:       {"WRITE", []Param{ps}},
	OpConcat:      {"CONCAT", []Param{pv, ps, ps}},
	OpStrlen:      {"STRLEN", []Param{pv, ps}},
	OpGetChar:     {"GETCHAR", []Param{pv, ps, ps}},
	OpSetChar:     {"SETCHAR", []Param{pv, ps, ps}},
	OpType:        {"TYPE", []Param{pv, ps}},
	OpLabel:       {"LABEL", []Param{pl}},
	OpJump:        {"JUMP", []Param{pl}},
	OpJumpIfEq:    {"JUMPIFEQ", []Param{pl, ps, ps}},
	OpJumpIfNeq:   {"JUMPIFNEQ", []Param{pl, ps, ps}},
	OpExit:        {"EXIT", []Param{ps}},
	OpDprint:      {"DPRINT", []Param{ps}},
	OpBreak:       {"BREAK", nil},
}

var opcodesByName = func() map[string]Opcode {
	m := make(map[string]Opcode, opcodeCount)
	for op := Opcode(0); op < opcodeCount; op++ {
		m[signatures[op].name] = op
	}
	return m
}()

// String returns the upper-case mnemonic
func (o Opcode) String() string {
	if !o.Valid() {
		return "UNKNOWN"
	}
	return signatures[o].name
}

// Valid reports whether o is one of the defined opcodes
func (o Opcode) Valid() bool {
	return o >= 0 && o < opcodeCount
}

// Params returns the expected argument categories in order
func (o Opcode) Params() []Param {
	if !o.Valid() {
		return nil
	}
	return signatures[o].params
}

// Arity returns the number of arguments the opcode takes
func (o Opcode) Arity() int {
	return len(o.Params())
}

// LookupOpcode maps a mnemonic to its opcode, ignoring case
func LookupOpcode(name string) (Opcode, bool) {
	op, ok := opcodesByName[strings.ToUpper(name)]
	return op, ok
}

// Accepts reports whether an argument of kind k may fill this parameter
func (p Param) Accepts(k ArgKind) bool {
	switch p {
	case ParamVar:
		return k == ArgVar
	case ParamSymb:
		return k == ArgVar || k.IsLiteral()
	case ParamLabel:
		return k == ArgLabel
	case ParamType:
		return k == ArgType
	default:
		return false
	}
}

func (p Param) String() string {
	switch p {
	case ParamVar:
		return "var"
	case ParamSymb:
		return "symb"
	case ParamLabel:
		return "label"
	case ParamType:
		return "type"
	default:
		return "?"
	}
}
