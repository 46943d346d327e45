package interpreter

import (
	"bufio"
	"fmt"
	"io"
)

// dump writes the interpreter state for BREAK
func (i *Interpreter) dump(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "pc: %d, executed: %d\n", i.cu.PC(), i.steps)
	fmt.Fprintf(bw, "call depth: %d, operand stack: %d, local frames: %d\n",
		i.cu.CallDepth(), i.stack.Len(), i.frames.LocalDepth())

	dumpFrame(bw, "GF", i.frames.Global())
	dumpFrame(bw, "LF", i.frames.Local())
	dumpFrame(bw, "TF", i.frames.Temporary())

	return bw.Flush()
}

func dumpFrame(w io.Writer, name string, f *Frame) {
	if f == nil {
		fmt.Fprintf(w, "%s: <undefined>\n", name)
		return
	}

	fmt.Fprintf(w, "%s:", name)
	for _, n := range f.Names() {
		v, _ := f.Get(n)
		if !v.IsSet() {
			fmt.Fprintf(w, " %s=<unset>", n)
			continue
		}
		fmt.Fprintf(w, " %s=%s@%q", n, v.Type, v.String())
	}
	fmt.Fprintln(w)
}
