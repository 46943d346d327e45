package stack

// Stack is a slice-backed LIFO container.
type Stack[T any] struct {
	a []T
	l int
}

// New creates a new stack instance, pushing elm bottom first
func New[T any](elm ...T) *Stack[T] {
	s := Stack[T]{
		a: make([]T, 0, len(elm)),
		l: 0,
	}

	for _, e := range elm {
		s.Push(e)
	}

	return &s
}

// Push adds an element to the top of the stack
func (s *Stack[T]) Push(elm T) {
	s.l++
	s.a = append(s.a, elm)
}

// Pop removes and returns the top element of the stack.
// The second result is false when the stack is empty.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if s.l < 1 {
		return zero, false
	}

	s.l--
	elm := s.a[s.l]
	s.a[s.l] = zero
	s.a = s.a[:s.l]

	return elm, true
}

// Peek returns the top element of the stack without removing it
func (s *Stack[T]) Peek() (T, bool) {
	if s.l < 1 {
		var zero T
		return zero, false
	}

	return s.a[s.l-1], true
}

// Size returns the number of elements on the stack
func (s *Stack[T]) Size() int {
	return s.l
}

// Clear drops every element
func (s *Stack[T]) Clear() {
	clear(s.a)
	s.a = s.a[:0]
	s.l = 0
}

// Array returns the underlying array of the stack, bottom first
func (s *Stack[T]) Array() []T {
	return s.a
}
