package token

import (
	"reflect"
	"testing"

	"aot/source"
)

func TestCursorPeekDoesNotAdvance(t *testing.T) {
	tokens := []Token{
		New(Identifier, "a", source.Location{Line: 1, Column: 1}),
		New(Operator, "+", source.Location{Line: 1, Column: 3}),
	}
	c := NewCursor(tokens)

	t.Run("PeekTwice", func(t *testing.T) {
		first := c.Peek()
		second := c.Peek()
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Peek() = %v, then %v; want identical", first, second)
		}
		if first.Text != "a" {
			t.Errorf("Peek().Text = %q, want %q", first.Text, "a")
		}
	})
}

func TestCursorNextTokenAdvances(t *testing.T) {
	tokens := []Token{
		New(Identifier, "a", source.Location{Line: 1, Column: 1}),
		New(Operator, "+", source.Location{Line: 1, Column: 3}),
	}
	c := NewCursor(tokens)

	got := c.NextToken()
	if got.Text != "a" {
		t.Fatalf("NextToken() = %q, want %q", got.Text, "a")
	}
	if c.PrevToken().Text != "a" {
		t.Errorf("PrevToken() = %q, want %q", c.PrevToken().Text, "a")
	}
	if c.Peek().Text != "+" {
		t.Errorf("Peek() after NextToken() = %q, want %q", c.Peek().Text, "+")
	}
}

func TestCursorPastEndYieldsSyntheticEnd(t *testing.T) {
	last := source.Location{Line: 2, Column: 5}
	tokens := []Token{New(Identifier, "a", last)}
	c := NewCursor(tokens)

	c.NextToken()

	end := c.Peek()
	if end.Kind != End {
		t.Fatalf("Peek() past end Kind = %v, want End", end.Kind)
	}
	if end.Loc != last {
		t.Errorf("Peek() past end Loc = %v, want %v", end.Loc, last)
	}
}

func TestCursorConsumeMatchAndMismatch(t *testing.T) {
	tokens := []Token{New(Punctuation, ";", source.Location{Line: 1, Column: 1})}
	c := NewCursor(tokens)

	if _, ok := c.Consume(","); ok {
		t.Fatalf("Consume(\",\") matched a \";\" token")
	}
	tok, ok := c.Consume(";")
	if !ok {
		t.Fatalf("Consume(\";\") did not match")
	}
	if tok.Text != ";" {
		t.Errorf("Consume(\";\") returned %q", tok.Text)
	}
}

func TestCursorEmpty(t *testing.T) {
	if !NewCursor(nil).Empty() {
		t.Errorf("Empty() on nil token slice = false, want true")
	}
	if NewCursor([]Token{New(End, "", source.None)}).Empty() {
		t.Errorf("Empty() on non-empty token slice = true, want false")
	}
}
