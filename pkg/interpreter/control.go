package interpreter

import (
	"ippvm/pkg/code"
	"ippvm/pkg/stack"
)

// LabelTable maps label names to 1-based instruction indices.
type LabelTable map[string]int

// BuildLabelTable records every LABEL in a single forward pass
func BuildLabelTable(program []code.Instruction) (LabelTable, error) {
	labels := make(LabelTable)
	for idx, in := range program {
		if in.Op != code.OpLabel {
			continue
		}

		name := in.Arg(1).Name
		if _, ok := labels[name]; ok {
			return nil, &Error{
				Kind: KindDuplicateLabel,
				Op:   in.Op,
				PC:   idx + 1,
				Msg:  "label " + name + " is already defined",
			}
		}
		labels[name] = idx + 1
	}

	return labels, nil
}

// Lookup returns the index of a label, failing with UndefinedLabel
func (t LabelTable) Lookup(name string) (int, error) {
	idx, ok := t[name]
	if !ok {
		return 0, newError(KindUndefinedLabel, "label %s is not defined", name)
	}
	return idx, nil
}

// ControlUnit holds the program counter, the label table and the
// call/return stack. The counter only changes through its methods.
type ControlUnit struct {
	pc     int
	labels LabelTable
	calls  *stack.Stack[int]
}

func newControlUnit(labels LabelTable) *ControlUnit {
	return &ControlUnit{
		pc:     1,
		labels: labels,
		calls:  stack.New[int](),
	}
}

// PC returns the 1-based index of the current instruction
func (c *ControlUnit) PC() int {
	return c.pc
}

// Advance moves to the next instruction
func (c *ControlUnit) Advance() {
	c.pc++
}

// CallDepth returns the number of saved return addresses
func (c *ControlUnit) CallDepth() int {
	return c.calls.Size()
}

// Check validates that a label exists without transferring control
func (c *ControlUnit) Check(label string) error {
	_, err := c.labels.Lookup(label)
	return err
}

// Jump sets the counter to the label's index
func (c *ControlUnit) Jump(label string) error {
	idx, err := c.labels.Lookup(label)
	if err != nil {
		return err
	}

	c.pc = idx
	return nil
}

// Call saves the current counter and jumps. An unknown label leaves the
// call stack untouched.
func (c *ControlUnit) Call(label string) error {
	idx, err := c.labels.Lookup(label)
	if err != nil {
		return err
	}

	c.calls.Push(c.pc)
	c.pc = idx
	return nil
}

// Return restores the counter saved by the matching Call
func (c *ControlUnit) Return() error {
	pc, ok := c.calls.Pop()
	if !ok {
		return newError(KindMissingValue, "call stack is empty")
	}

	c.pc = pc
	return nil
}

func (c *ControlUnit) reset() {
	c.pc = 1
	c.calls.Clear()
}
