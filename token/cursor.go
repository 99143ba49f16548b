package token

import "aot/source"

// Cursor is a positional reader over a token sequence. It never mutates the
// underlying slice; only its internal position advances.
type Cursor struct {
	tokens []Token
	pos    int
}

// NewCursor wraps a token slice for sequential reading.
func NewCursor(tokens []Token) *Cursor {
	return &Cursor{tokens: tokens}
}

// Empty reports whether there are no tokens to read at all.
func (c *Cursor) Empty() bool {
	return len(c.tokens) == 0
}

// Peek returns the token at the current position without advancing. Past
// the end of the stream it returns a synthetic End token at the last real
// token's location (or source.None if the stream was empty).
func (c *Cursor) Peek() Token {
	if c.pos < len(c.tokens) {
		return c.tokens[c.pos]
	}
	return EndAt(c.lastLocation())
}

// NextToken advances past the current token and returns it.
func (c *Cursor) NextToken() Token {
	tok := c.Peek()
	if c.pos < len(c.tokens) {
		c.pos++
	}
	return tok
}

// PrevToken returns the token most recently consumed by NextToken/Consume,
// or a sentinel End token if nothing has been consumed yet.
func (c *Cursor) PrevToken() Token {
	if c.pos == 0 {
		return EndAt(c.lastLocation())
	}
	return c.tokens[c.pos-1]
}

// Consume advances past the current token if its Text matches expected,
// returning the consumed token. It returns false without advancing if the
// text does not match.
func (c *Cursor) Consume(expected string) (Token, bool) {
	if c.Peek().Text == expected {
		return c.NextToken(), true
	}
	return Token{}, false
}

func (c *Cursor) lastLocation() source.Location {
	if len(c.tokens) == 0 {
		return source.None
	}
	return c.tokens[len(c.tokens)-1].Loc
}
