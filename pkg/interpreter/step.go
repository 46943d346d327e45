package interpreter

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"ippvm/pkg/code"
)

// execute runs one instruction. It returns halted=true only for EXIT; the
// caller advances the counter otherwise.
func (i *Interpreter) execute(in code.Instruction) (bool, error) {
	switch in.Op {
	case code.OpCreateFrame:
		i.frames.CreateTemporary()

	case code.OpPushFrame:
		if err := i.frames.PushTemporary(); err != nil {
			return false, err
		}
		i.log.Debug("frame pushed", "depth", i.frames.LocalDepth())

	case code.OpPopFrame:
		if err := i.frames.PopLocal(); err != nil {
			return false, err
		}
		i.log.Debug("frame popped", "depth", i.frames.LocalDepth())

	case code.OpDefVar:
		dst := in.Arg(1)
		return false, i.frames.Declare(dst.Scope, dst.Name)

	case code.OpMove:
		v, err := i.symbol(in.Arg(2))
		if err != nil {
			return false, err
		}
		return false, i.store(in.Arg(1), v)

	case code.OpPushs:
		v, err := i.symbol(in.Arg(1))
		if err != nil {
			return false, err
		}
		i.stack.Push(v)

	case code.OpPops:
		dst := in.Arg(1)
		return false, i.stack.PopInto(i.frames, dst.Scope, dst.Name)

	case code.OpAdd, code.OpSub, code.OpMul, code.OpIDiv:
		return false, i.arithmetic(in)

	case code.OpLt, code.OpGt, code.OpEq:
		return false, i.relational(in)

	case code.OpAnd, code.OpOr, code.OpNot:
		return false, i.logical(in)

	case code.OpInt2Char, code.OpStri2Int, code.OpConcat, code.OpStrlen, code.OpGetChar, code.OpSetChar:
		return false, i.stringOp(in)

	case code.OpType:
		return false, i.typeOf(in)

	case code.OpRead:
		return false, i.read(in)

	case code.OpWrite:
		v, err := i.symbol(in.Arg(1))
		if err != nil {
			return false, err
		}
		if _, err := io.WriteString(i.out, v.String()); err != nil {
			return false, fmt.Errorf("write output: %w", err)
		}

	case code.OpLabel:
		// indexed by the pre-pass

	case code.OpJump:
		return false, i.cu.Jump(in.Arg(1).Name)

	case code.OpJumpIfEq, code.OpJumpIfNeq:
		return false, i.conditionalJump(in)

	case code.OpCall:
		if err := i.cu.Call(in.Arg(1).Name); err != nil {
			return false, err
		}
		i.log.Debug("call", "label", in.Arg(1).Name, "depth", i.cu.CallDepth())

	case code.OpReturn:
		return false, i.cu.Return()

	case code.OpExit:
		return i.exit(in)

	case code.OpDprint:
		v, err := i.symbol(in.Arg(1))
		if err != nil {
			return false, err
		}
		if _, err := io.WriteString(i.dbg, v.String()); err != nil {
			return false, fmt.Errorf("write debug output: %w", err)
		}

	case code.OpBreak:
		if err := i.dump(i.dbg); err != nil {
			return false, fmt.Errorf("write debug output: %w", err)
		}

	default:
		return false, fmt.Errorf("%w: %d", ErrUnknownOpcode, in.Op)
	}

	return false, nil
}

// symbol resolves a variable or literal argument to its value. This is the
// only operand read path; an unassigned variable fails with MissingValue.
func (i *Interpreter) symbol(a code.Argument) (Value, error) {
	if a.Kind == code.ArgVar {
		return i.frames.Read(a.Scope, a.Name)
	}

	v, ok := literal(a)
	if !ok {
		return Value{}, fmt.Errorf("argument %s is not a symbol", a)
	}
	return v, nil
}

// operands resolves the second and third arguments of a var-symb-symb instruction
func (i *Interpreter) operands(in code.Instruction) (Value, Value, error) {
	a, err := i.symbol(in.Arg(2))
	if err != nil {
		return Value{}, Value{}, err
	}

	b, err := i.symbol(in.Arg(3))
	if err != nil {
		return Value{}, Value{}, err
	}

	return a, b, nil
}

// store assigns v to the variable named by dst
func (i *Interpreter) store(dst code.Argument, v Value) error {
	return i.frames.Assign(dst.Scope, dst.Name, v)
}

func (i *Interpreter) arithmetic(in code.Instruction) error {
	a, b, err := i.operands(in)
	if err != nil {
		return err
	}

	if a.Type != TypeInt || b.Type != TypeInt {
		return newError(KindTypeMismatch, "%s needs int operands, got %s and %s", in.Op, a.Type, b.Type)
	}

	var res int64
	switch in.Op {
	case code.OpAdd:
		res = a.Int + b.Int
	case code.OpSub:
		res = a.Int - b.Int
	case code.OpMul:
		res = a.Int * b.Int
	case code.OpIDiv:
		if b.Int == 0 {
			return newError(KindOperandValue, "division by zero")
		}
		res = floorDiv(a.Int, b.Int)
	}

	return i.store(in.Arg(1), NewInt(res))
}

// floorDiv divides rounding toward negative infinity
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func (i *Interpreter) relational(in code.Instruction) error {
	a, b, err := i.operands(in)
	if err != nil {
		return err
	}

	var res bool
	if in.Op == code.OpEq {
		res, err = equal(a, b)
		if err != nil {
			return err
		}
	} else {
		if a.Type != b.Type || a.Type == TypeNil {
			return newError(KindTypeMismatch, "%s cannot compare %s and %s", in.Op, a.Type, b.Type)
		}
		if in.Op == code.OpLt {
			res = a.less(b)
		} else {
			res = b.less(a)
		}
	}

	return i.store(in.Arg(1), NewBool(res))
}

// equal applies the EQ compatibility rule: same types compare by value,
// nil against anything else is unequal, any other mix is a type mismatch.
func equal(a, b Value) (bool, error) {
	if a.Type == b.Type {
		return a.equal(b), nil
	}

	if a.Type == TypeNil || b.Type == TypeNil {
		return false, nil
	}

	return false, newError(KindTypeMismatch, "cannot compare %s and %s", a.Type, b.Type)
}

func (i *Interpreter) logical(in code.Instruction) error {
	a, err := i.symbol(in.Arg(2))
	if err != nil {
		return err
	}

	if in.Op == code.OpNot {
		if a.Type != TypeBool {
			return newError(KindTypeMismatch, "NOT needs a bool operand, got %s", a.Type)
		}
		return i.store(in.Arg(1), NewBool(!a.Bool))
	}

	b, err := i.symbol(in.Arg(3))
	if err != nil {
		return err
	}

	if a.Type != TypeBool || b.Type != TypeBool {
		return newError(KindTypeMismatch, "%s needs bool operands, got %s and %s", in.Op, a.Type, b.Type)
	}

	if in.Op == code.OpAnd {
		return i.store(in.Arg(1), NewBool(a.Bool && b.Bool))
	}
	return i.store(in.Arg(1), NewBool(a.Bool || b.Bool))
}

func (i *Interpreter) stringOp(in code.Instruction) error {
	switch in.Op {
	case code.OpInt2Char:
		a, err := i.symbol(in.Arg(2))
		if err != nil {
			return err
		}
		if a.Type != TypeInt {
			return newError(KindTypeMismatch, "INT2CHAR needs an int operand, got %s", a.Type)
		}
		if a.Int < 0 || a.Int > utf8.MaxRune || !utf8.ValidRune(rune(a.Int)) {
			return newError(KindStringOperation, "%d is not a valid code point", a.Int)
		}
		return i.store(in.Arg(1), NewString(string(rune(a.Int))))

	case code.OpStrlen:
		a, err := i.symbol(in.Arg(2))
		if err != nil {
			return err
		}
		if a.Type != TypeString {
			return newError(KindTypeMismatch, "STRLEN needs a string operand, got %s", a.Type)
		}
		return i.store(in.Arg(1), NewInt(int64(utf8.RuneCountInString(a.Str))))

	case code.OpConcat:
		a, b, err := i.operands(in)
		if err != nil {
			return err
		}
		if a.Type != TypeString || b.Type != TypeString {
			return newError(KindTypeMismatch, "CONCAT needs string operands, got %s and %s", a.Type, b.Type)
		}
		return i.store(in.Arg(1), NewString(a.Str+b.Str))

	case code.OpStri2Int, code.OpGetChar:
		a, b, err := i.operands(in)
		if err != nil {
			return err
		}
		if a.Type != TypeString || b.Type != TypeInt {
			return newError(KindTypeMismatch, "%s needs string and int operands, got %s and %s", in.Op, a.Type, b.Type)
		}
		runes := []rune(a.Str)
		if b.Int < 0 || b.Int >= int64(len(runes)) {
			return newError(KindStringOperation, "index %d out of range for length %d", b.Int, len(runes))
		}
		r := runes[b.Int]
		if in.Op == code.OpStri2Int {
			return i.store(in.Arg(1), NewInt(int64(r)))
		}
		return i.store(in.Arg(1), NewString(string(r)))

	case code.OpSetChar:
		idx, src, err := i.operands(in)
		if err != nil {
			return err
		}
		dst, err := i.symbol(in.Arg(1))
		if err != nil {
			return err
		}
		if dst.Type != TypeString || idx.Type != TypeInt || src.Type != TypeString {
			return newError(KindTypeMismatch, "SETCHAR needs string, int and string operands, got %s, %s and %s", dst.Type, idx.Type, src.Type)
		}
		runes := []rune(dst.Str)
		if idx.Int < 0 || idx.Int >= int64(len(runes)) {
			return newError(KindStringOperation, "index %d out of range for length %d", idx.Int, len(runes))
		}
		first, size := utf8.DecodeRuneInString(src.Str)
		if size == 0 {
			return newError(KindStringOperation, "SETCHAR source is empty")
		}
		runes[idx.Int] = first
		return i.store(in.Arg(1), NewString(string(runes)))
	}

	return fmt.Errorf("%w: %s is not a string operation", ErrUnknownOpcode, in.Op)
}

func (i *Interpreter) typeOf(in code.Instruction) error {
	src := in.Arg(2)

	var name string
	if src.Kind == code.ArgVar {
		t, err := i.frames.ReadType(src.Scope, src.Name)
		if err != nil {
			return err
		}
		name = t.String()
	} else {
		name = src.Kind.String()
	}

	return i.store(in.Arg(1), NewString(name))
}

// read consumes one input item. Exhausted input and text that does not
// parse as the requested type both yield nil.
func (i *Interpreter) read(in code.Instruction) error {
	want, _ := ParseType(in.Arg(2).Name)

	v := Nil
	if text, ok := i.in.Next(); ok {
		v = parseInput(text, want)
	}

	return i.store(in.Arg(1), v)
}

func parseInput(text string, want Type) Value {
	switch want {
	case TypeInt:
		n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return Nil
		}
		return NewInt(n)
	case TypeBool:
		switch strings.ToLower(strings.TrimSpace(text)) {
		case "true":
			return NewBool(true)
		case "false":
			return NewBool(false)
		default:
			return Nil
		}
	case TypeString:
		return NewString(text)
	default:
		return Nil
	}
}

func (i *Interpreter) conditionalJump(in code.Instruction) error {
	label := in.Arg(1).Name
	if err := i.cu.Check(label); err != nil {
		return err
	}

	a, b, err := i.operands(in)
	if err != nil {
		return err
	}

	eq, err := equal(a, b)
	if err != nil {
		return err
	}

	if eq == (in.Op == code.OpJumpIfEq) {
		return i.cu.Jump(label)
	}
	return nil
}

func (i *Interpreter) exit(in code.Instruction) (bool, error) {
	v, err := i.symbol(in.Arg(1))
	if err != nil {
		return false, err
	}

	if v.Type != TypeInt {
		return false, newError(KindTypeMismatch, "EXIT needs an int operand, got %s", v.Type)
	}

	if v.Int < 0 || v.Int > 49 {
		return false, newError(KindOperandValue, "exit code %d is outside 0..49", v.Int)
	}

	i.exitCode = int(v.Int)
	return true, nil
}
