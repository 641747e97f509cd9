package value

import (
	"fmt"
	"strings"

	"github.com/scylladb/cql-stress/internal/diag"
	"github.com/scylladb/cql-stress/internal/lexer"
)

// KVEntry is one key/value pair of a key-value block. The value is either a
// bare word or a suffixed number; Num is non-nil in the numeric case.
type KVEntry struct {
	Key string
	Raw string
	Num *SuffixedNumber
}

// KeyValueBlock is a parenthesized option block with a fixed key vocabulary,
// e.g. replication(strategy=NetworkTopologyStrategy,replication_factor=3).
// Keys are stored in canonical spelling and supply order.
type KeyValueBlock struct {
	Entries []KVEntry
}

// Get returns the raw value for a canonical key, or "" when absent.
func (b KeyValueBlock) Get(key string) (string, bool) {
	for _, e := range b.Entries {
		if e.Key == key {
			return e.Raw, true
		}
	}
	return "", false
}

// String renders the block in grammar spelling.
func (b KeyValueBlock) String() string {
	parts := make([]string, 0, len(b.Entries))
	for _, e := range b.Entries {
		parts = append(parts, fmt.Sprintf("%s=%s", e.Key, e.Raw))
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// ParseKeyValueBlock consumes `(key=value,...)` after the caller consumed
// the block name. lookup resolves a key to its canonical spelling and
// rejects keys outside the block's vocabulary; aliased spellings of one
// canonical key conflict with each other (DuplicateKey). An empty pair list
// is permitted for blocks, unlike ratio maps: the block then contributes
// nothing and defaults apply.
func ParseKeyValueBlock(c *Cursor, blockName string, lookup func(string) (string, bool)) (KeyValueBlock, error) {
	mark := c.Mark()
	b, err := parseKeyValueBlock(c, blockName, lookup)
	if err != nil {
		c.Reset(mark)
		return KeyValueBlock{}, err
	}
	return b, nil
}

func parseKeyValueBlock(c *Cursor, blockName string, lookup func(string) (string, bool)) (KeyValueBlock, error) {
	var b KeyValueBlock
	if !c.Peek().IsPunct('(') {
		return b, diag.Errorf(diag.SyntaxError, blockName,
			"expected '(' after %s, got %s", blockName, c.Peek())
	}
	c.Next()

	seen := map[string]bool{}
	for !c.Peek().IsPunct(')') {
		if len(b.Entries) > 0 {
			if !c.Peek().IsPunct(',') {
				return b, diag.Errorf(diag.SyntaxError, blockName,
					"expected ',' or ')' in %s, got %s", blockName, c.Peek())
			}
			c.Next()
		}

		keyTok := c.Peek()
		if !keyTok.IsWord() {
			return b, diag.Errorf(diag.SyntaxError, blockName,
				"expected an option name in %s, got %s", blockName, keyTok)
		}
		canonical, ok := lookup(strings.ToLower(keyTok.Text))
		if !ok {
			return b, diag.Errorf(diag.UnknownIdentifier, keyTok.Text,
				"unknown %s option", blockName)
		}
		if seen[canonical] {
			return b, diag.Errorf(diag.DuplicateKey, keyTok.Text,
				"%s option %s supplied more than once", blockName, canonical)
		}
		seen[canonical] = true
		c.Next()

		if !c.Peek().IsOp(lexer.OpAssign) {
			return b, diag.Errorf(diag.SyntaxError, blockName,
				"expected '=' after %s, got %s", keyTok.Text, c.Peek())
		}
		c.Next()

		valTok := c.Peek()
		switch {
		case valTok.Kind == lexer.Number:
			n, err := ParseNumber(c, canonical)
			if err != nil {
				return b, err
			}
			b.Entries = append(b.Entries, KVEntry{Key: canonical, Raw: n.Raw, Num: &n})
		case valTok.IsWord():
			c.Next()
			b.Entries = append(b.Entries, KVEntry{Key: canonical, Raw: valTok.Text})
		default:
			return b, diag.Errorf(diag.SyntaxError, blockName,
				"expected a value after %s=, got %s", keyTok.Text, valTok)
		}
	}
	c.Next() // ')'
	return b, nil
}
