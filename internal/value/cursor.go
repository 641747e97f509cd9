// Package value implements the typed value domain of the command grammar
// (suffixed numbers, ranges, distribution descriptors, ratio maps, key-value
// blocks) and the small combinators that parse them out of a token stream.
//
// Every parser in this package follows the same contract: it either advances
// the cursor and returns a typed value, or it fails with a *diag.Error and
// leaves the cursor exactly where it was. The no-consume-on-failure rule is
// what lets the grammar try alternative productions at ambiguous points (a
// bare scalar versus the start of a range) without surfacing the dead end to
// the user.
package value

import "github.com/scylladb/cql-stress/internal/lexer"

// Cursor is a position in a token stream. The stream itself is never
// mutated; backtracking is a plain position reset.
type Cursor struct {
	toks []lexer.Token
	pos  int
}

// NewCursor wraps a scanned token stream. The stream must be terminated by
// an EOF token, as produced by the lexer.
func NewCursor(toks []lexer.Token) *Cursor {
	return &Cursor{toks: toks}
}

// Peek returns the current token without consuming it.
func (c *Cursor) Peek() lexer.Token {
	return c.toks[c.pos]
}

// PeekAt returns the token n positions ahead of the current one, or the EOF
// token when the stream is shorter.
func (c *Cursor) PeekAt(n int) lexer.Token {
	if c.pos+n >= len(c.toks) {
		return c.toks[len(c.toks)-1]
	}
	return c.toks[c.pos+n]
}

// Next consumes and returns the current token. At the end of the stream it
// keeps returning the EOF token.
func (c *Cursor) Next() lexer.Token {
	t := c.toks[c.pos]
	if t.Kind != lexer.EOF {
		c.pos++
	}
	return t
}

// AtEOF reports whether the cursor has consumed the whole stream.
func (c *Cursor) AtEOF() bool {
	return c.toks[c.pos].Kind == lexer.EOF
}

// Mark captures the current position for a later Reset.
func (c *Cursor) Mark() int { return c.pos }

// Reset rewinds the cursor to a previously captured mark.
func (c *Cursor) Reset(mark int) { c.pos = mark }
