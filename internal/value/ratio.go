package value

import (
	"fmt"
	"strings"

	"github.com/scylladb/cql-stress/internal/diag"
	"github.com/scylladb/cql-stress/internal/lexer"
)

// RatioEntry is one operation-name/weight pair of a ratio map.
type RatioEntry struct {
	Op     string
	Weight int64
}

// RatioMap is a weighted selection table over named operations. Entries keep
// their supply order; keys are unique and weights strictly positive.
type RatioMap struct {
	Entries []RatioEntry
}

// Weight returns the weight for op, or 0 when absent.
func (r RatioMap) Weight(op string) int64 {
	for _, e := range r.Entries {
		if e.Op == op {
			return e.Weight
		}
	}
	return 0
}

// String renders the map in grammar spelling: (read=1,write=2).
func (r RatioMap) String() string {
	parts := make([]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		parts = append(parts, fmt.Sprintf("%s=%d", e.Op, e.Weight))
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// ParseRatioMap consumes `(key=weight,...)`. The leading name token
// (`ratio`, `ops`) has already been consumed by the caller. member decides
// key membership; a nil member admits any identifier (used where the
// membership set lives outside the grammar, e.g. user profiles). An empty
// pair list is a RangeViolation: no weights provided.
func ParseRatioMap(c *Cursor, key string, member func(string) bool) (RatioMap, error) {
	mark := c.Mark()
	m, err := parseRatioMap(c, key, member)
	if err != nil {
		c.Reset(mark)
		return RatioMap{}, err
	}
	return m, nil
}

func parseRatioMap(c *Cursor, key string, member func(string) bool) (RatioMap, error) {
	var m RatioMap
	if !c.Peek().IsPunct('(') {
		return m, diag.Errorf(diag.SyntaxError, key,
			"expected '(' after %s, got %s", key, c.Peek())
	}
	c.Next()

	if c.Peek().IsPunct(')') {
		c.Next()
		return m, diag.Errorf(diag.RangeViolation, key, "no weights provided")
	}

	seen := map[string]bool{}
	for {
		op := c.Peek()
		if !op.IsWord() {
			return m, diag.Errorf(diag.SyntaxError, key,
				"expected an operation name, got %s", op)
		}
		name := strings.ToLower(op.Text)
		if member != nil && !member(name) {
			return m, diag.Errorf(diag.UnknownIdentifier, op.Text,
				"not a valid operation name for %s", key)
		}
		if seen[name] {
			return m, diag.Errorf(diag.DuplicateKey, op.Text,
				"operation specified more than once in %s", key)
		}
		seen[name] = true
		c.Next()

		if !c.Peek().IsOp(lexer.OpAssign) {
			return m, diag.Errorf(diag.SyntaxError, key,
				"expected '=' after %s, got %s", op.Text, c.Peek())
		}
		c.Next()

		w, err := ParseCount(c, op.Text)
		if err != nil {
			return m, err
		}
		if w <= 0 {
			return m, diag.Errorf(diag.RangeViolation, op.Text,
				"weight must be positive, got %d", w)
		}
		m.Entries = append(m.Entries, RatioEntry{Op: name, Weight: w})

		switch {
		case c.Peek().IsPunct(','):
			c.Next()
		case c.Peek().IsPunct(')'):
			c.Next()
			return m, nil
		default:
			return m, diag.Errorf(diag.SyntaxError, key,
				"expected ',' or ')' in %s, got %s", key, c.Peek())
		}
	}
}
