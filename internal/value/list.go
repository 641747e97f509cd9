package value

import (
	"fmt"

	"github.com/scylladb/cql-stress/internal/diag"
	"github.com/scylladb/cql-stress/internal/lexer"
)

// ParseHostList consumes a comma-separated host list. A host is a bare word
// or a dotted address, optionally followed by `:port`. A trailing comma is a
// syntax error, not an ignored empty element.
func ParseHostList(c *Cursor, key string) ([]string, error) {
	mark := c.Mark()
	hosts, err := parseHostList(c, key)
	if err != nil {
		c.Reset(mark)
		return nil, err
	}
	return hosts, nil
}

func parseHostList(c *Cursor, key string) ([]string, error) {
	var hosts []string
	for {
		t := c.Peek()
		if (!t.IsWord() && t.Kind != lexer.Number) || isGroupName(t) {
			return nil, diag.Errorf(diag.SyntaxError, key,
				"expected a host name, got %s", t)
		}
		host := t.Text
		c.Next()
		if c.Peek().IsPunct(':') {
			c.Next()
			port := c.Peek()
			if port.Kind != lexer.Number || port.IsFloat || port.Suffix != "" {
				return nil, diag.Errorf(diag.SyntaxError, key,
					"expected a port number after %s:, got %s", host, port)
			}
			c.Next()
			host = fmt.Sprintf("%s:%s", host, port.Text)
		}
		hosts = append(hosts, host)

		if !c.Peek().IsPunct(',') {
			return hosts, nil
		}
		c.Next()
	}
}

// isGroupName reports whether the token is a dash-prefixed option group
// name, which terminates any list.
func isGroupName(t lexer.Token) bool {
	return t.Kind == lexer.Ident && len(t.Text) > 0 && t.Text[0] == '-'
}

// ParseCommaList consumes a comma-separated list of bare words (e.g. the
// -col names= parameter). A trailing comma is a syntax error.
func ParseCommaList(c *Cursor, key string) ([]string, error) {
	mark := c.Mark()
	var items []string
	for {
		t := c.Peek()
		if !t.IsWord() || isGroupName(t) {
			c.Reset(mark)
			return nil, diag.Errorf(diag.SyntaxError, key,
				"expected a name, got %s", t)
		}
		items = append(items, t.Text)
		c.Next()

		if !c.Peek().IsPunct(',') {
			return items, nil
		}
		c.Next()
	}
}
