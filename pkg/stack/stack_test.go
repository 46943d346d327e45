package stack

import (
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestStack(t *testing.T) {
	s := New(1, 2)

	if s.Size() != 2 {
		t.Fatalf("expected size 2, got %d", s.Size())
	}
	if top, ok := s.Peek(); !ok || top != 2 {
		t.Errorf("expected peek 2, got %d (%v)", top, ok)
	}

	s.Push(3)
	if !slices.Equal(s.Array(), []int{1, 2, 3}) {
		t.Errorf("unexpected contents %v", s.Array())
	}

	for _, expected := range []int{3, 2, 1} {
		got, ok := s.Pop()
		if !ok || got != expected {
			t.Errorf("expected %d, got %d (%v)", expected, got, ok)
		}
	}

	if _, ok := s.Pop(); ok {
		t.Error("pop on empty stack should fail")
	}
	if _, ok := s.Peek(); ok {
		t.Error("peek on empty stack should fail")
	}
}

func TestClear(t *testing.T) {
	s := New("a", "b")
	s.Clear()

	if s.Size() != 0 || len(s.Array()) != 0 {
		t.Errorf("expected empty stack, got %v", s.Array())
	}

	s.Push("c")
	if top, _ := s.Peek(); top != "c" || s.Size() != 1 {
		t.Errorf("stack unusable after clear: %v", s.Array())
	}
}

func TestProperty_PopReversesPush(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("popping everything yields the pushes in reverse", prop.ForAll(
		func(items []int) bool {
			s := New[int]()
			for _, it := range items {
				s.Push(it)
			}
			if s.Size() != len(items) {
				return false
			}

			for n := len(items) - 1; n >= 0; n-- {
				got, ok := s.Pop()
				if !ok || got != items[n] {
					return false
				}
			}
			_, ok := s.Pop()
			return !ok && s.Size() == 0
		},
		gen.SliceOf(gen.Int()),
	))

	properties.TestingRun(t)
}
