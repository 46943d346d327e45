// Package runner wires the loader, the input provider and the interpreter
// into a single run that ends in a process status.
package runner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"ippvm/internal/config"
	"ippvm/pkg/code"
	"ippvm/pkg/color"
	"ippvm/pkg/input"
	"ippvm/pkg/interpreter"
	"ippvm/pkg/loader"
)

// Driver statuses
const (
	StatusParameter = 10 // missing or invalid parameters
	StatusOpenFile  = 11 // source or input file cannot be opened
	StatusInternal  = 99
)

type Runner struct {
	Config     config.Config
	SourceFile string // empty reads the source from Stdin
	InputFile  string // empty reads READ input from Stdin

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run loads and executes the program and returns the process status
func (r *Runner) Run() int {
	r.defaults()

	if r.SourceFile == "" && r.InputFile == "" {
		r.report(color.Error("at least one of --source and --input is required"))
		return StatusParameter
	}

	if err := r.Config.Validate(); err != nil {
		r.report(color.Error(err.Error()))
		return StatusParameter
	}

	src, err := r.readSource()
	if err != nil {
		r.report(color.Error(err.Error()))
		return StatusOpenFile
	}

	format, _ := loader.ParseFormat(r.Config.SourceFormat)
	program, err := loader.Load(src, format)
	if err != nil {
		var le *loader.Error
		if errors.As(err, &le) {
			if le.Line > 0 {
				r.report(color.ErrorWithPosition("line", le.Line, le.Msg, ""))
			} else {
				r.report(color.Error(le.Msg))
			}
			return le.Status
		}
		r.report(color.Error(err.Error()))
		return StatusInternal
	}
	log.Info("Program loaded", "instructions", len(program), "format", format)

	in, closeInput, err := r.openInput()
	if err != nil {
		r.report(color.Error(err.Error()))
		return StatusOpenFile
	}
	defer closeInput()

	provider, err := input.NewLineProvider(in)
	if err != nil {
		r.report(color.Error(err.Error()))
		return StatusOpenFile
	}

	if r.Config.Trace {
		r.listing(program)
	}

	out := bufio.NewWriter(r.Stdout)
	it := interpreter.New(program,
		interpreter.WithWriter(out),
		interpreter.WithDebugWriter(r.Stderr),
		interpreter.WithInput(provider),
		interpreter.WithMaxSteps(r.Config.MaxSteps),
		interpreter.WithLogger(r.traceLogger()),
	)

	exitCode, runErr := it.Run()
	if err := out.Flush(); err != nil && runErr == nil {
		runErr = fmt.Errorf("flush output: %w", err)
	}
	log.Debug("Run finished", "steps", it.Steps(), "unread_input", input.Remaining(provider))

	if runErr != nil {
		r.reportRuntime(program, runErr)
		return interpreter.Status(runErr)
	}

	log.Info("Program exited", "code", exitCode, "steps", it.Steps())
	return exitCode
}

func (r *Runner) defaults() {
	if r.Stdin == nil {
		r.Stdin = os.Stdin
	}
	if r.Stdout == nil {
		r.Stdout = os.Stdout
	}
	if r.Stderr == nil {
		r.Stderr = os.Stderr
	}
}

func (r *Runner) readSource() ([]byte, error) {
	if r.SourceFile == "" {
		src, err := io.ReadAll(r.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read source from stdin: %w", err)
		}
		return src, nil
	}

	log.Info("Processing file", "file", r.SourceFile)
	src, err := os.ReadFile(r.SourceFile)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return src, nil
}

// openInput returns the decoded input stream and a function that releases it
func (r *Runner) openInput() (io.Reader, func(), error) {
	var raw io.Reader = r.Stdin
	closer := func() {}

	if r.InputFile != "" {
		f, err := os.Open(r.InputFile)
		if err != nil {
			return nil, closer, fmt.Errorf("open input: %w", err)
		}
		raw = f
		closer = func() { f.Close() }
	}

	dec, err := input.Decode(raw, r.Config.InputEncoding)
	if err != nil {
		closer()
		return nil, func() {}, err
	}
	return dec, closer, nil
}

func (r *Runner) traceLogger() *log.Logger {
	if !r.Config.Trace {
		return log.Default()
	}

	l := log.NewWithOptions(r.Stderr, log.Options{
		Level:  log.DebugLevel,
		Prefix: "TRACE",
	})
	l.SetColorProfile(color.Profile())
	return l
}

// listing prints the loaded program with 1-based indices
func (r *Runner) listing(program []code.Instruction) {
	fmt.Fprintln(r.Stderr, color.GreenText("=== Program ==="))
	if len(program) == 0 {
		fmt.Fprintln(r.Stderr, color.GrayText("No instructions."))
		return
	}

	for i, in := range program {
		fmt.Fprintf(r.Stderr, "%s: %s", color.CyanText(fmt.Sprintf("%d", i+1)), color.YellowText(in.Op.String()))
		for _, a := range in.Args {
			fmt.Fprintf(r.Stderr, " %s", color.BlueText(a.String()))
		}
		fmt.Fprintln(r.Stderr)
	}
}

func (r *Runner) reportRuntime(program []code.Instruction, err error) {
	var re *interpreter.Error
	if errors.As(err, &re) && re.PC > 0 && re.PC <= len(program) {
		r.report(color.ErrorWithPosition("instruction", re.PC, fmt.Sprintf("%s: %s", re.Kind, re.Msg), program[re.PC-1].String()))
		return
	}
	r.report(color.Error(err.Error()))
}

func (r *Runner) report(msg string) {
	fmt.Fprintln(r.Stderr, msg)
}
