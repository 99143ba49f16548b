package stack

import "testing"

func TestPushPopOrder(t *testing.T) {
	var s Stack[int]
	s.Push(1)
	s.Push(2)
	s.Push(3)

	for _, want := range []int{3, 2, 1} {
		got, ok := s.Pop()
		if !ok {
			t.Fatalf("Pop() returned ok=false, want true")
		}
		if got != want {
			t.Errorf("Pop() = %d, want %d", got, want)
		}
	}
	if !s.IsEmpty() {
		t.Errorf("IsEmpty() = false after draining stack")
	}
}

func TestPopEmpty(t *testing.T) {
	var s Stack[string]
	if _, ok := s.Pop(); ok {
		t.Errorf("Pop() on empty stack returned ok=true")
	}
	if _, ok := s.Peek(); ok {
		t.Errorf("Peek() on empty stack returned ok=true")
	}
}

func TestAnySearchesFromTop(t *testing.T) {
	var s Stack[string]
	s.Push("TopLevel")
	s.Push("While")
	s.Push("Block")

	if !s.Any(func(v string) bool { return v == "While" }) {
		t.Errorf("Any() did not find \"While\" anywhere on the stack")
	}
	if s.Any(func(v string) bool { return v == "Local" }) {
		t.Errorf("Any() found \"Local\" which was never pushed")
	}
}
