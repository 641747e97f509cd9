// Package lexer turns the raw argument vector into a flat token stream.
//
// The scanner operates on the whitespace-joined argument sequence, so
// `-schema 'replication ( factor = 3 )'` and `-schema replication(factor=3)`
// produce identical streams; this matches the legacy tool, which repaired
// whitespace around `,=()` before splitting its arguments. Numbers are
// scanned greedily including an optional trailing unit suffix; any other
// trailing character glued to a numeric literal is a syntax error, never an
// ignored tail. Quote characters group a region without affecting
// tokenization; a quoted region that wraps a single bare word becomes a Str
// token.
package lexer

import (
	"strings"

	"github.com/scylladb/cql-stress/internal/diag"
)

// Unit suffixes the scanner accepts on numeric literals. Whether a given
// suffix is meaningful for a given parameter is decided later, by the unit
// family the parameter declares; the scanner only rejects characters that are
// no suffix at all (e.g. `10000p`).
var knownSuffixes = map[string]bool{
	"k": true, "m": true, "b": true, // count multipliers
	"s": true, "h": true, "ms": true, // time units
	"%": true, "/s": true, // percentage, per-second rate
}

// ScanArgs scans an argument vector, joining the arguments with single
// spaces first.
func ScanArgs(args []string) ([]Token, error) {
	return Scan(strings.Join(args, " "))
}

// Scan tokenizes the input. On failure it returns a *diag.Error with kind
// SyntaxError; no tokens are returned alongside an error.
func Scan(input string) ([]Token, error) {
	s := scanner{input: input}
	for s.i < len(s.input) {
		if err := s.step(); err != nil {
			return nil, err
		}
	}
	if s.depth > 0 {
		return nil, diag.Errorf(diag.SyntaxError, "(", "unmatched '(' at end of input")
	}
	if s.quote != 0 {
		return nil, diag.Errorf(diag.SyntaxError, string(s.quote), "unterminated quote")
	}
	s.emit(Token{Kind: EOF, Pos: s.i + 1})
	return s.toks, nil
}

type scanner struct {
	input string
	i     int
	toks  []Token
	depth int  // parenthesis nesting
	quote byte // active quote character in splice mode, 0 if none
}

func (s *scanner) emit(t Token) { s.toks = append(s.toks, t) }

func (s *scanner) step() error {
	c := s.input[s.i]
	switch {
	case c == ' ' || c == '\t':
		s.i++
		return nil
	case c == '\'' || c == '"':
		return s.scanQuote(c)
	case c == '(':
		s.depth++
		s.punct(c)
		return nil
	case c == ')':
		if s.depth == 0 {
			return diag.Errorf(diag.SyntaxError, ")", "unmatched ')' at position %d", s.i+1)
		}
		s.depth--
		s.punct(c)
		return nil
	case c == ',' || c == ':' || c == '~':
		s.punct(c)
		return nil
	case c == '=' || c == '<' || c == '>':
		return s.scanOperator()
	case c == '.':
		return s.scanDot()
	case c == '-':
		return s.scanDash()
	case c >= '0' && c <= '9':
		return s.scanNumber(s.i)
	case isIdentStart(c):
		s.scanIdent(s.i)
		return nil
	default:
		return diag.Errorf(diag.SyntaxError, string(c), "unexpected character at position %d", s.i+1)
	}
}

func (s *scanner) punct(c byte) {
	s.emit(Token{Kind: Punct, Text: string(c), Pos: s.i + 1})
	s.i++
}

// scanQuote handles both quote roles: a quote wrapping one bare word yields a
// Str token, while a quote wrapping structured text is transparent grouping
// (the legacy tool re-splits quoted arguments the same way).
func (s *scanner) scanQuote(c byte) error {
	if s.quote == c {
		s.quote = 0
		s.i++
		return nil
	}
	if s.quote != 0 {
		return diag.Errorf(diag.SyntaxError, string(c), "nested quote at position %d", s.i+1)
	}
	rest := s.input[s.i+1:]
	end := strings.IndexByte(rest, c)
	if end < 0 {
		return diag.Errorf(diag.SyntaxError, string(c), "unterminated quote at position %d", s.i+1)
	}
	content := rest[:end]
	if content == "" {
		return diag.Errorf(diag.SyntaxError, string(c), "empty quoted literal at position %d", s.i+1)
	}
	if isBareWord(content) {
		s.emit(Token{Kind: Str, Text: content, Pos: s.i + 1})
		s.i += end + 2
		return nil
	}
	s.quote = c
	s.i++
	return nil
}

func (s *scanner) scanOperator() error {
	start := s.i
	for s.i < len(s.input) && isOpChar(s.input[s.i]) {
		s.i++
	}
	op := s.input[start:s.i]
	switch op {
	case OpAssign, OpLT, OpGT, OpLE, OpGE:
		s.emit(Token{Kind: Op, Text: op, Pos: start + 1})
		return nil
	}
	return diag.Errorf(diag.SyntaxError, op, "invalid operator at position %d", start+1)
}

func (s *scanner) scanDot() error {
	if s.i+1 < len(s.input) && s.input[s.i+1] == '.' {
		// `../` begins a parent-relative path (profile=../p.yaml); the
		// range separator is always digit-adjacent.
		if s.i+2 < len(s.input) && s.input[s.i+2] == '/' {
			s.scanIdent(s.i)
			return nil
		}
		s.emit(Token{Kind: Op, Text: OpRange, Pos: s.i + 1})
		s.i += 2
		return nil
	}
	// A lone dot may begin a relative path (./nodes.txt), nothing else.
	if s.i+1 < len(s.input) && (isIdentStart(s.input[s.i+1]) || s.input[s.i+1] == '.') {
		s.scanIdent(s.i)
		return nil
	}
	return diag.Errorf(diag.SyntaxError, ".", "unexpected '.' at position %d", s.i+1)
}

func (s *scanner) scanDash() error {
	if s.i+1 >= len(s.input) {
		return diag.Errorf(diag.SyntaxError, "-", "stray '-' at end of input")
	}
	next := s.input[s.i+1]
	if next >= '0' && next <= '9' {
		return s.scanNumber(s.i)
	}
	if isIdentStart(next) {
		s.scanIdent(s.i)
		return nil
	}
	return diag.Errorf(diag.SyntaxError, "-", "stray '-' at position %d", s.i+1)
}

func (s *scanner) scanIdent(start int) {
	s.i = start
	if s.input[s.i] == '-' {
		s.i++
	}
	for s.i < len(s.input) && isIdentChar(s.input[s.i]) {
		s.i++
	}
	s.emit(Token{Kind: Ident, Text: s.input[start:s.i], Pos: start + 1})
}

// scanNumber scans a numeric literal: optional sign, digits, optional
// fraction, optional unit suffix. Runs that start with digits but cannot be a
// number (dotted hosts like 127.0.0.1, names like 2nodes.example.com) fall
// back to ident scanning; runs that are a number followed by a junk tail
// (10000p) are syntax errors.
func (s *scanner) scanNumber(start int) error {
	s.i = start
	if s.input[s.i] == '-' {
		s.i++
	}
	for s.i < len(s.input) && isDigit(s.input[s.i]) {
		s.i++
	}
	isFloat := false

	if s.i < len(s.input) && s.input[s.i] == '.' {
		switch {
		case s.i+1 < len(s.input) && s.input[s.i+1] == '.':
			// Range separator follows; the number ends here.
		case s.i+1 < len(s.input) && isDigit(s.input[s.i+1]):
			s.i += 2
			for s.i < len(s.input) && isDigit(s.input[s.i]) {
				s.i++
			}
			isFloat = true
			if s.i < len(s.input) && s.input[s.i] == '.' {
				// Second dotted group: a host, not a number.
				s.scanIdent(start)
				return nil
			}
		default:
			return diag.Errorf(diag.SyntaxError, s.input[start:s.i+1],
				"malformed numeric literal at position %d", start+1)
		}
	}
	mantissa := s.input[start:s.i]

	suffix := ""
	if s.i < len(s.input) {
		switch c := s.input[s.i]; {
		case c == '%':
			suffix = "%"
			s.i++
		case c == '/':
			if s.i+1 < len(s.input) && s.input[s.i+1] == 's' &&
				(s.i+2 >= len(s.input) || !isIdentChar(s.input[s.i+2])) {
				suffix = "/s"
				s.i += 2
			} else {
				s.scanIdent(start)
				return nil
			}
		case isAlpha(c):
			j := s.i
			for j < len(s.input) && isAlpha(s.input[j]) {
				j++
			}
			if j < len(s.input) && isIdentChar(s.input[j]) {
				// More word follows the letters: an ident after all.
				s.scanIdent(start)
				return nil
			}
			suffix = strings.ToLower(s.input[s.i:j])
			if !knownSuffixes[suffix] {
				return diag.Errorf(diag.SyntaxError, s.input[start:j],
					"stray trailing characters after numeric literal at position %d", start+1)
			}
			s.i = j
		}
	}

	s.emit(Token{
		Kind:     Number,
		Text:     s.input[start:s.i],
		Pos:      start + 1,
		Mantissa: mantissa,
		Suffix:   suffix,
		IsFloat:  isFloat,
	})
	return nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentStart(c byte) bool {
	return isAlpha(c) || c == '_' || c == '/' || c >= 0x80
}

func isIdentChar(c byte) bool {
	return isAlpha(c) || isDigit(c) || c == '_' || c == '-' || c == '.' || c == '/' || c >= 0x80
}

func isOpChar(c byte) bool { return c == '=' || c == '<' || c == '>' }

func isBareWord(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isIdentChar(s[i]) {
			return false
		}
	}
	return true
}
