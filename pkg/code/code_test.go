package code

import (
	"testing"
	"unicode/utf8"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestLookupOpcode(t *testing.T) {
	tests := []struct {
		name     string
		expected Opcode
		ok       bool
	}{
		{"MOVE", OpMove, true},
		{"move", OpMove, true},
		{"JumpIfNeq", OpJumpIfNeq, true},
		{"INT2CHAR", OpInt2Char, true},
		{"BREAK", OpBreak, true},
		{"PRINT", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		op, ok := LookupOpcode(tt.name)
		if ok != tt.ok || (ok && op != tt.expected) {
			t.Errorf("%q: expected %s (%v), got %s (%v)", tt.name, tt.expected, tt.ok, op, ok)
		}
	}
}

func TestOpcodeSignatures(t *testing.T) {
	for op := Opcode(0); op < opcodeCount; op++ {
		if op.String() == "" || op.String() == "UNKNOWN" {
			t.Errorf("opcode %d has no mnemonic", op)
		}
		back, ok := LookupOpcode(op.String())
		if !ok || back != op {
			t.Errorf("%s does not round-trip through LookupOpcode", op)
		}
	}

	tests := []struct {
		op     Opcode
		params []Param
	}{
		{OpCreateFrame, nil},
		{OpDefVar, []Param{ParamVar}},
		{OpRead, []Param{ParamVar, ParamType}},
		{OpSetChar, []Param{ParamVar, ParamSymb, ParamSymb}},
		{OpJumpIfEq, []Param{ParamLabel, ParamSymb, ParamSymb}},
		{OpExit, []Param{ParamSymb}},
	}
	for _, tt := range tests {
		got := tt.op.Params()
		if len(got) != len(tt.params) || tt.op.Arity() != len(tt.params) {
			t.Errorf("%s: expected %v, got %v", tt.op, tt.params, got)
			continue
		}
		for n := range got {
			if got[n] != tt.params[n] {
				t.Errorf("%s: param %d expected %s, got %s", tt.op, n+1, tt.params[n], got[n])
			}
		}
	}

	if Opcode(-1).Valid() || opcodeCount.Valid() {
		t.Error("out of range opcodes should be invalid")
	}
}

func TestParamAccepts(t *testing.T) {
	tests := []struct {
		param    Param
		kind     ArgKind
		expected bool
	}{
		{ParamVar, ArgVar, true},
		{ParamVar, ArgInt, false},
		{ParamSymb, ArgVar, true},
		{ParamSymb, ArgNil, true},
		{ParamSymb, ArgString, true},
		{ParamSymb, ArgLabel, false},
		{ParamSymb, ArgType, false},
		{ParamLabel, ArgLabel, true},
		{ParamLabel, ArgString, false},
		{ParamType, ArgType, true},
		{ParamType, ArgVar, false},
	}

	for _, tt := range tests {
		if got := tt.param.Accepts(tt.kind); got != tt.expected {
			t.Errorf("%s accepts %s: expected %v, got %v", tt.param, tt.kind, tt.expected, got)
		}
	}
}

func TestInstructionString(t *testing.T) {
	in := New(OpJumpIfEq, Label("end"), Var(ScopeLocal, "n"), String("a b#\\"))
	expected := `JUMPIFEQ end LF@n string@a\032b\035\092`
	if got := in.String(); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}

	in = New(OpMove, Var(ScopeTemporary, "x"), Nil())
	if got := in.String(); got != "MOVE TF@x nil@nil" {
		t.Errorf("unexpected rendering %q", got)
	}
}

func TestDecodeEscapes(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"plain", "plain"},
		{`a\032b`, "a b"},
		{`\035\092`, `#\`},
		{`\010`, "\n"},
		{`tail\12`, `tail\12`},
		{`\x41`, `\x41`},
		{`\\065`, `\A`},
	}

	for _, tt := range tests {
		if got := DecodeEscapes(tt.in); got != tt.expected {
			t.Errorf("%q: expected %q, got %q", tt.in, tt.expected, got)
		}
	}
}

func TestProperty_EscapesRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("decoding an encoded string is the identity", prop.ForAll(
		func(s string) bool {
			return DecodeEscapes(EncodeEscapes(s)) == s
		},
		gen.AnyString().SuchThat(utf8.ValidString),
	))

	properties.TestingRun(t)
}
