// Package token holds the in-memory model of a box file: an ordered chain of
// title and item tokens addressed by stable arena indices.
package token

// Kind classifies a token.
type Kind int

const (
	// Unknown marks lines that carry no content. Unknown tokens never enter a Sequence.
	Unknown Kind = iota
	Title
	Item
)

func (k Kind) String() string {
	switch k {
	case Title:
		return "title"
	case Item:
		return "item"
	default:
		return "unknown"
	}
}

// ID addresses a token inside the Sequence that created it.
type ID int

// None is the absent ID: no anchor, no neighbour, no cursor position.
const None ID = -1

// Token is a snapshot of one unit of content.
type Token struct {
	ID   ID
	Kind Kind
	Line int // 1-based source line; zero for tokens inserted after parse
	Text string
}

type node struct {
	token Token
	prev  ID
	next  ID
	live  bool
}

// Sequence is a doubly linked chain of tokens stored in an arena.
// Removed slots are not reused, so IDs stay stable for the Sequence lifetime.
type Sequence struct {
	nodes []node
	first ID
	last  ID
	size  int
}

// NewSequence returns an empty sequence.
func NewSequence() *Sequence {
	return &Sequence{first: None, last: None}
}

// Len reports the number of live tokens.
func (s *Sequence) Len() int {
	return s.size
}

// First returns the head token, or false when the sequence is empty.
func (s *Sequence) First() (Token, bool) {
	return s.Get(s.first)
}

// Last returns the tail token, or false when the sequence is empty.
func (s *Sequence) Last() (Token, bool) {
	return s.Get(s.last)
}

// Get returns the live token for id.
func (s *Sequence) Get(id ID) (Token, bool) {
	if !s.valid(id) {
		return Token{}, false
	}
	return s.nodes[id].token, true
}

// Next returns the token following id in file order.
func (s *Sequence) Next(id ID) (Token, bool) {
	if !s.valid(id) {
		return Token{}, false
	}
	return s.Get(s.nodes[id].next)
}

// Prev returns the token preceding id in file order.
func (s *Sequence) Prev(id ID) (Token, bool) {
	if !s.valid(id) {
		return Token{}, false
	}
	return s.Get(s.nodes[id].prev)
}

// Push appends a parsed token at the tail.
func (s *Sequence) Push(kind Kind, line int, text string) Token {
	return s.insert(s.last, kind, line, text)
}

// InsertAfter links a new token right after anchor. A None anchor makes the
// token the new head; an anchor that is no longer live appends at the tail.
// Cursors are not moved.
func (s *Sequence) InsertAfter(anchor ID, kind Kind, text string) Token {
	if anchor != None && !s.valid(anchor) {
		anchor = s.last
	}
	return s.insert(anchor, kind, 0, text)
}

func (s *Sequence) insert(anchor ID, kind Kind, line int, text string) Token {
	id := ID(len(s.nodes))
	n := node{
		token: Token{ID: id, Kind: kind, Line: line, Text: text},
		prev:  None,
		next:  None,
		live:  true,
	}

	if anchor == None {
		n.next = s.first
	} else {
		n.prev = anchor
		n.next = s.nodes[anchor].next
	}
	s.nodes = append(s.nodes, n)

	if n.prev == None {
		s.first = id
	} else {
		s.nodes[n.prev].next = id
	}
	if n.next == None {
		s.last = id
	} else {
		s.nodes[n.next].prev = id
	}

	s.size++
	return n.token
}

// unlink removes id and returns its successor.
func (s *Sequence) unlink(id ID) ID {
	n := &s.nodes[id]
	if n.prev == None {
		s.first = n.next
	} else {
		s.nodes[n.prev].next = n.next
	}
	if n.next == None {
		s.last = n.prev
	} else {
		s.nodes[n.next].prev = n.prev
	}

	next := n.next
	*n = node{prev: None, next: None}
	s.size--
	return next
}

// Reset drops every token. IDs handed out before Reset become invalid.
func (s *Sequence) Reset() {
	s.nodes = nil
	s.first = None
	s.last = None
	s.size = 0
}

// Tokens returns the live tokens in file order.
func (s *Sequence) Tokens() []Token {
	tokens := make([]Token, 0, s.size)
	for id := s.first; id != None; id = s.nodes[id].next {
		tokens = append(tokens, s.nodes[id].token)
	}
	return tokens
}

// Cursor starts a new cursor positioned before the first token.
func (s *Sequence) Cursor() *Cursor {
	return &Cursor{seq: s, current: None}
}

func (s *Sequence) valid(id ID) bool {
	return id >= 0 && int(id) < len(s.nodes) && s.nodes[id].live
}
