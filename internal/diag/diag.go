// Package diag defines the diagnostic error type shared by the lexer, the
// value parsers and the settings grammar. Parsing is fail-fast: the first
// Error produced anywhere aborts the whole parse and is reported to the user
// as-is, so every Error carries the kind, the offending token or key, and a
// human-readable message.
package diag

import "fmt"

// Kind classifies a parse or validation failure.
type Kind int

const (
	// SyntaxError covers lexical malformations: unbalanced brackets,
	// malformed numeric literals, stray or doubled operators.
	SyntaxError Kind = iota
	// UnknownIdentifier is an unknown command, option group, key, help
	// topic, distribution name or ratio key.
	UnknownIdentifier
	// DuplicateKey is a key supplied more than once in its scope, or two
	// mutually exclusive keys supplied together.
	DuplicateKey
	// ArityMismatch is a distribution or block whose argument count or
	// shape does not match its declared form, or a command missing a
	// required parameter.
	ArityMismatch
	// RangeViolation is min>max, a non-positive value where a positive one
	// is required, or an empty weight map.
	RangeViolation
	// TypeMismatch is a relational operator not permitted for a key, or a
	// value whose shape does not match the key's declared type.
	TypeMismatch
)

// String returns the legacy-style name of the kind.
func (k Kind) String() string {
	switch k {
	case SyntaxError:
		return "syntax error"
	case UnknownIdentifier:
		return "unknown identifier"
	case DuplicateKey:
		return "duplicate key"
	case ArityMismatch:
		return "arity mismatch"
	case RangeViolation:
		return "range violation"
	case TypeMismatch:
		return "type mismatch"
	}
	return fmt.Sprintf("diag.Kind(%d)", int(k))
}

// Error is a single user-visible diagnostic. Where names the offending token
// or key; it may be empty when the failure concerns the input as a whole.
type Error struct {
	Kind  Kind
	Where string
	Msg   string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Where == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %q: %s", e.Kind, e.Where, e.Msg)
}

// Errorf builds an Error with a formatted message.
func Errorf(kind Kind, where, format string, args ...any) *Error {
	return &Error{Kind: kind, Where: where, Msg: fmt.Sprintf(format, args...)}
}
