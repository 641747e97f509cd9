package settings

import (
	"strings"

	"github.com/scylladb/cql-stress/internal/diag"
	"github.com/scylladb/cql-stress/internal/lexer"
	"github.com/scylladb/cql-stress/internal/value"
	"github.com/scylladb/cql-stress/internal/vocab"
)

// Version is the release string reported by the version command.
const Version = "0.1.0"

// Result is the outcome of parsing an argument vector. For workload
// commands Config is set; for the informational commands (help, version,
// print) Config is nil and Output holds the text to show.
type Result struct {
	Config *Configuration
	Output string
}

// Parse parses a full argument vector, command first, using the default
// vocabulary.
func Parse(args []string) (*Result, error) {
	return ParseWithVocabulary(args, vocab.Default())
}

// ParseWithVocabulary parses with an explicit vocabulary. Tests and
// embedders use it to extend the admissible distribution and operation
// sets.
func ParseWithVocabulary(args []string, voc *vocab.Vocabulary) (*Result, error) {
	toks, err := lexer.ScanArgs(args)
	if err != nil {
		return nil, err
	}
	c := value.NewCursor(toks)

	t := c.Peek()
	if t.Kind == lexer.EOF {
		return nil, diag.Errorf(diag.ArityMismatch, "command",
			"no command given; try `help`")
	}
	if !t.IsWord() {
		return nil, diag.Errorf(diag.SyntaxError, "command",
			"expected a command, got %s", t)
	}

	switch strings.ToLower(t.Text) {
	case "help":
		c.Next()
		return parseHelp(c, voc)
	case "version":
		c.Next()
		if err := expectEOF(c); err != nil {
			return nil, err
		}
		return &Result{Output: "cql-stress " + Version + "\n"}, nil
	case "print":
		c.Next()
		return parsePrint(c, voc)
	}

	cmd, ok := lookupCommand(t.Text)
	if !ok {
		return nil, diag.Errorf(diag.UnknownIdentifier, t.Text,
			"unknown command; try `help`")
	}
	c.Next()

	cfg, err := parseWorkload(cmd, c, voc)
	if err != nil {
		return nil, err
	}
	return &Result{Config: cfg}, nil
}

// parsePrint implements the print command: it parses a distribution
// definition and echoes its canonical form, so definitions can be checked
// without running a workload.
func parsePrint(c *value.Cursor, voc *vocab.Vocabulary) (*Result, error) {
	t := c.Peek()
	if t.Kind == lexer.EOF {
		return nil, diag.Errorf(diag.ArityMismatch, "print",
			"print requires dist=<distribution>")
	}
	if !t.IsWord() || t.Text != "dist" {
		return nil, diag.Errorf(diag.UnknownIdentifier, t.Text,
			"print understands only dist=")
	}
	c.Next()
	if !c.Peek().IsOp(lexer.OpAssign) {
		return nil, diag.Errorf(diag.TypeMismatch, "dist", "dist requires a value")
	}
	c.Next()
	d, err := value.ParseDistribution(c, voc, "dist")
	if err != nil {
		return nil, err
	}
	if err := expectEOF(c); err != nil {
		return nil, err
	}
	return &Result{Output: d.String() + "\n"}, nil
}

func expectEOF(c *value.Cursor) error {
	if t := c.Peek(); t.Kind != lexer.EOF {
		return diag.Errorf(diag.SyntaxError, t.Text,
			"unexpected trailing input: %s", t)
	}
	return nil
}
