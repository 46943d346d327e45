package interpreter

import (
	"maps"
	"slices"

	"ippvm/pkg/code"
	"ippvm/pkg/stack"
)

// Frame is a named-variable container. A declared but unassigned variable
// holds a Value of TypeUnset.
type Frame struct {
	vars map[string]Value
}

// NewFrame creates an empty frame
func NewFrame() *Frame {
	return &Frame{vars: make(map[string]Value)}
}

// Has reports whether name is declared in the frame
func (f *Frame) Has(name string) bool {
	_, ok := f.vars[name]
	return ok
}

// Get returns the variable's current value and whether it is declared
func (f *Frame) Get(name string) (Value, bool) {
	v, ok := f.vars[name]
	return v, ok
}

// Len returns the number of declared variables
func (f *Frame) Len() int {
	return len(f.vars)
}

// Names returns the declared names in sorted order
func (f *Frame) Names() []string {
	return slices.Sorted(maps.Keys(f.vars))
}

// FrameManager owns the global frame, the optional temporary frame and the
// local frame stack. The top of the local stack is the active local frame.
type FrameManager struct {
	global *Frame
	temp   *Frame // nil when no temporary frame exists
	locals *stack.Stack[*Frame]
}

// NewFrameManager creates a manager holding only an empty global frame
func NewFrameManager() *FrameManager {
	return &FrameManager{
		global: NewFrame(),
		locals: stack.New[*Frame](),
	}
}

// Global returns the global frame
func (m *FrameManager) Global() *Frame {
	return m.global
}

// Temporary returns the temporary frame, or nil if none exists
func (m *FrameManager) Temporary() *Frame {
	return m.temp
}

// Local returns the active local frame, or nil if the local stack is empty
func (m *FrameManager) Local() *Frame {
	f, _ := m.locals.Peek()
	return f
}

// LocalDepth returns the size of the local frame stack
func (m *FrameManager) LocalDepth() int {
	return m.locals.Size()
}

func (m *FrameManager) resolve(scope code.Scope) (*Frame, error) {
	switch scope {
	case code.ScopeGlobal:
		return m.global, nil
	case code.ScopeTemporary:
		if m.temp == nil {
			return nil, newError(KindMissingFrame, "temporary frame does not exist")
		}
		return m.temp, nil
	case code.ScopeLocal:
		f, ok := m.locals.Peek()
		if !ok {
			return nil, newError(KindMissingFrame, "local frame stack is empty")
		}
		return f, nil
	default:
		return nil, newError(KindMissingFrame, "unknown frame %s", scope)
	}
}

// lookup resolves the frame and checks that name is declared in it
func (m *FrameManager) lookup(scope code.Scope, name string) (*Frame, Value, error) {
	f, err := m.resolve(scope)
	if err != nil {
		return nil, Value{}, err
	}

	v, ok := f.vars[name]
	if !ok {
		return nil, Value{}, newError(KindUndefinedVariable, "variable %s@%s is not defined", scope, name)
	}

	return f, v, nil
}

// Declare creates an unassigned variable in the selected frame
func (m *FrameManager) Declare(scope code.Scope, name string) error {
	f, err := m.resolve(scope)
	if err != nil {
		return err
	}

	if f.Has(name) {
		return newError(KindDuplicateVariable, "variable %s@%s is already defined", scope, name)
	}

	f.vars[name] = Value{}
	return nil
}

// Assign overwrites the value and type of a declared variable
func (m *FrameManager) Assign(scope code.Scope, name string, v Value) error {
	f, _, err := m.lookup(scope, name)
	if err != nil {
		return err
	}

	f.vars[name] = v
	return nil
}

// Read returns the value of a declared and assigned variable
func (m *FrameManager) Read(scope code.Scope, name string) (Value, error) {
	_, v, err := m.lookup(scope, name)
	if err != nil {
		return Value{}, err
	}

	if !v.IsSet() {
		return Value{}, newError(KindMissingValue, "variable %s@%s has no value", scope, name)
	}

	return v, nil
}

// ReadType returns the runtime type of a declared variable. An unassigned
// variable yields TypeUnset rather than an error.
func (m *FrameManager) ReadType(scope code.Scope, name string) (Type, error) {
	_, v, err := m.lookup(scope, name)
	if err != nil {
		return TypeUnset, err
	}

	return v.Type, nil
}

// CreateTemporary replaces any temporary frame with a fresh empty one
func (m *FrameManager) CreateTemporary() {
	m.temp = NewFrame()
}

// PushTemporary moves the temporary frame onto the local stack
func (m *FrameManager) PushTemporary() error {
	if m.temp == nil {
		return newError(KindMissingFrame, "no temporary frame to push")
	}

	m.locals.Push(m.temp)
	m.temp = nil
	return nil
}

// PopLocal moves the top local frame into the temporary slot
func (m *FrameManager) PopLocal() error {
	f, ok := m.locals.Pop()
	if !ok {
		return newError(KindMissingFrame, "no local frame to pop")
	}

	m.temp = f
	return nil
}

// Reset drops every frame and starts over with an empty global frame
func (m *FrameManager) Reset() {
	m.global = NewFrame()
	m.temp = nil
	m.locals.Clear()
}
