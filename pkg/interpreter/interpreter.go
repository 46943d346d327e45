package interpreter

import (
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"ippvm/pkg/code"
	"ippvm/pkg/input"
)

// Interpreter executes a validated IPPcode21 instruction sequence. All run
// state lives here; two interpreters never share anything.
type Interpreter struct {
	program []code.Instruction

	frames *FrameManager
	stack  *OperandStack
	cu     *ControlUnit // nil until the label pre-pass has run

	in  input.Provider // values consumed by READ
	out io.Writer      // output sink for WRITE
	dbg io.Writer      // DPRINT and BREAK
	log *log.Logger

	maxSteps int // maximum steps (0 = unlimited)
	steps    int // steps executed

	exitCode int
	exited   bool
}

type Option func(*Interpreter)

// WithWriter sets the output sink for WRITE
func WithWriter(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// WithDebugWriter sets the writer used by DPRINT and BREAK
func WithDebugWriter(w io.Writer) Option {
	return func(i *Interpreter) { i.dbg = w }
}

// WithInput sets the provider READ consumes from
func WithInput(p input.Provider) Option {
	return func(i *Interpreter) { i.in = p }
}

// WithMaxSteps sets a maximum number of interpreter steps before returning ErrMaxStepsExceeded
func WithMaxSteps(n int) Option {
	return func(i *Interpreter) { i.maxSteps = n }
}

// WithLogger enables execution tracing at debug level
func WithLogger(l *log.Logger) Option {
	return func(i *Interpreter) { i.log = l }
}

// New creates a new Interpreter instance
func New(program []code.Instruction, opts ...Option) *Interpreter {
	it := &Interpreter{
		program: program,
		frames:  NewFrameManager(),
		stack:   NewOperandStack(),
	}

	for _, o := range opts {
		o(it)
	}

	if it.out == nil {
		it.out = os.Stdout
	}
	if it.dbg == nil {
		it.dbg = os.Stderr
	}
	if it.in == nil {
		it.in = input.Slice()
	}
	if it.log == nil {
		it.log = log.New(io.Discard)
	}

	return it
}

// Prepare builds the label table. Run and Step call it on demand.
func (i *Interpreter) Prepare() error {
	labels, err := BuildLabelTable(i.program)
	if err != nil {
		return err
	}

	i.cu = newControlUnit(labels)
	i.log.Debug("labels indexed", "count", len(labels))
	return nil
}

// Reset clears runtime state (frames, stacks, counters) but keeps the
// program, the label table and the configured input and output.
func (i *Interpreter) Reset() {
	i.frames.Reset()
	i.stack.reset()
	if i.cu != nil {
		i.cu.reset()
	}
	i.steps = 0
	i.exitCode = 0
	i.exited = false
}

// Frames returns the frame manager
func (i *Interpreter) Frames() *FrameManager {
	return i.frames
}

// Stack returns the operand stack
func (i *Interpreter) Stack() *OperandStack {
	return i.stack
}

// PC returns the current 1-based instruction index, 0 before Prepare
func (i *Interpreter) PC() int {
	if i.cu == nil {
		return 0
	}
	return i.cu.PC()
}

// Steps returns the number of executed instructions
func (i *Interpreter) Steps() int {
	return i.steps
}

// Step executes a single instruction, returning (halted, error)
func (i *Interpreter) Step() (bool, error) {
	if i.cu == nil {
		if err := i.Prepare(); err != nil {
			return false, err
		}
	}

	if i.exited {
		return true, nil
	}

	pc := i.cu.PC()
	if pc < 1 || pc > len(i.program) {
		return true, nil
	}

	if i.maxSteps > 0 && i.steps >= i.maxSteps {
		return false, ErrMaxStepsExceeded
	}

	in := i.program[pc-1]
	i.log.Debug("exec", "pc", pc, "op", in.Op)

	halted, err := i.execute(in)
	i.steps++
	if err != nil {
		return false, annotate(err, pc, in.Op)
	}

	if halted {
		i.exited = true
		return true, nil
	}

	i.cu.Advance()
	return false, nil
}

// Run executes until the program ends or EXIT runs, returning the exit
// code. Running off the end is success with code 0.
func (i *Interpreter) Run() (int, error) {
	if i.cu == nil {
		if err := i.Prepare(); err != nil {
			return 0, err
		}
	}

	for {
		halted, err := i.Step()
		if err != nil {
			return 0, err
		}

		if halted {
			i.log.Debug("halted", "steps", i.steps, "code", i.exitCode)
			return i.exitCode, nil
		}
	}
}

// annotate stamps the failing instruction onto a runtime error
func annotate(err error, pc int, op code.Opcode) error {
	var e *Error
	if errors.As(err, &e) && e.PC == 0 {
		e.PC = pc
		e.Op = op
	}
	return err
}
