package token

type cursorState int

const (
	beforeStart cursorState = iota
	positioned
	exhausted
)

// Cursor is a forward scan over a Sequence that can remove the token it sits on.
type Cursor struct {
	seq     *Sequence
	state   cursorState
	current ID
}

// Next advances the cursor. The first call lands on the head token. At the
// tail the cursor stays on the last token and Next keeps returning false.
func (c *Cursor) Next() (Token, bool) {
	switch c.state {
	case beforeStart:
		if c.seq.first == None {
			return Token{}, false
		}
		c.state = positioned
		c.current = c.seq.first
		return c.seq.nodes[c.current].token, true
	case positioned:
		if !c.seq.valid(c.current) {
			c.state = exhausted
			c.current = None
			return Token{}, false
		}
		next := c.seq.nodes[c.current].next
		if next == None {
			return Token{}, false
		}
		c.current = next
		return c.seq.nodes[next].token, true
	default:
		return Token{}, false
	}
}

// Current returns the token under the cursor.
func (c *Cursor) Current() (Token, bool) {
	if c.state != positioned {
		return Token{}, false
	}
	return c.seq.Get(c.current)
}

// Remove unlinks the current token and moves the cursor onto its successor,
// which is returned. Without a current token Remove does nothing.
// Removing the tail exhausts the cursor.
func (c *Cursor) Remove() (Token, bool) {
	if c.state != positioned || !c.seq.valid(c.current) {
		return Token{}, false
	}

	next := c.seq.unlink(c.current)
	if next == None {
		c.state = exhausted
		c.current = None
		return Token{}, false
	}

	c.current = next
	return c.seq.nodes[next].token, true
}

// Reset puts the cursor back before the first token.
func (c *Cursor) Reset() {
	c.state = beforeStart
	c.current = None
}
