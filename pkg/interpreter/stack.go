package interpreter

import (
	"ippvm/pkg/code"
	"ippvm/pkg/stack"
)

// OperandStack backs PUSHS and POPS.
type OperandStack struct {
	s *stack.Stack[Value]
}

func NewOperandStack() *OperandStack {
	return &OperandStack{s: stack.New[Value]()}
}

// Push places v on top of the stack
func (o *OperandStack) Push(v Value) {
	o.s.Push(v)
}

// Pop removes the top value; an empty stack fails with MissingValue
func (o *OperandStack) Pop() (Value, error) {
	v, ok := o.s.Pop()
	if !ok {
		return Value{}, newError(KindMissingValue, "operand stack is empty")
	}
	return v, nil
}

// PopInto pops the top value and assigns it to the target variable
func (o *OperandStack) PopInto(frames *FrameManager, scope code.Scope, name string) error {
	v, err := o.Pop()
	if err != nil {
		return err
	}
	return frames.Assign(scope, name, v)
}

// Len returns the stack depth
func (o *OperandStack) Len() int {
	return o.s.Size()
}

func (o *OperandStack) reset() {
	o.s.Clear()
}
