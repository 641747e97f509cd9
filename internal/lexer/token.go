package lexer

import "fmt"

// Kind discriminates the token variants produced by the scanner.
type Kind int

const (
	// Ident is a bare word: command names, keys, enum values, host names,
	// file paths. Dash-prefixed option group names are idents too.
	Ident Kind = iota
	// Number is a numeric literal with an optional unit suffix.
	Number
	// Str is a quoted literal that wraps a single bare word.
	Str
	// Op is one of the relational operators `= < > <= >=` or the range
	// separator `..`.
	Op
	// Punct is one of `( ) , : ~`.
	Punct
	// EOF terminates every token stream.
	EOF
)

// String returns a short name for the kind, used in diagnostics.
func (k Kind) String() string {
	switch k {
	case Ident:
		return "identifier"
	case Number:
		return "number"
	case Str:
		return "string"
	case Op:
		return "operator"
	case Punct:
		return "punctuation"
	case EOF:
		return "end of input"
	}
	return fmt.Sprintf("lexer.Kind(%d)", int(k))
}

// Operator spellings. Stored in Token.Text for Op tokens.
const (
	OpAssign = "="
	OpLT     = "<"
	OpGT     = ">"
	OpLE     = "<="
	OpGE     = ">="
	OpRange  = ".."
)

// Token is one element of the scanned stream. Tokens are immutable once
// produced.
type Token struct {
	Kind Kind
	// Text is the raw spelling: the whole word for idents, the operator or
	// punctuation characters, the unquoted content for strings, and the
	// full literal (mantissa plus suffix) for numbers.
	Text string
	// Pos is the 1-based byte offset of the token in the joined input,
	// for diagnostics.
	Pos int

	// Number-only fields.
	Mantissa string // digits, possibly signed, possibly with a fraction
	Suffix   string // lowercased unit suffix, or ""
	IsFloat  bool
}

// IsOp reports whether the token is the given operator.
func (t Token) IsOp(spelling string) bool {
	return t.Kind == Op && t.Text == spelling
}

// IsPunct reports whether the token is the given punctuation character.
func (t Token) IsPunct(ch byte) bool {
	return t.Kind == Punct && len(t.Text) == 1 && t.Text[0] == ch
}

// IsWord reports whether the token can stand where a bare word is expected:
// an ident or a quoted literal.
func (t Token) IsWord() bool {
	return t.Kind == Ident || t.Kind == Str
}

// String renders the token for diagnostics.
func (t Token) String() string {
	if t.Kind == EOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.Text)
}
