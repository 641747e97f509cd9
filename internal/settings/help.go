package settings

import (
	"fmt"
	"strings"

	"github.com/scylladb/cql-stress/internal/diag"
	"github.com/scylladb/cql-stress/internal/lexer"
	"github.com/scylladb/cql-stress/internal/value"
	"github.com/scylladb/cql-stress/internal/vocab"
)

// parseHelp handles `help`, `help <command>` and `help <-group>`. All help
// text is rendered from the same schemas that drive parsing, so it cannot
// drift from the grammar.
func parseHelp(c *value.Cursor, voc *vocab.Vocabulary) (*Result, error) {
	t := c.Peek()
	if t.Kind == lexer.EOF {
		return &Result{Output: generalHelp(voc)}, nil
	}
	if !t.IsWord() {
		return nil, diag.Errorf(diag.SyntaxError, "help",
			"expected a command or option group name, got %s", t)
	}
	topic := t.Text
	c.Next()
	if err := expectEOF(c); err != nil {
		return nil, err
	}

	if cmd, ok := lookupCommand(topic); ok {
		return &Result{Output: schemaHelp(commandSchema(cmd, voc))}, nil
	}
	if def, ok := groups[topic]; ok {
		return &Result{Output: schemaHelp(def.build(voc))}, nil
	}
	switch strings.ToLower(topic) {
	case "help", "version", "print":
		return &Result{Output: generalHelp(voc)}, nil
	}
	return nil, diag.Errorf(diag.UnknownIdentifier, topic,
		"no help topic; try `help`")
}

func schemaHelp(s *schema) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\n", s.name, s.desc)
	for _, line := range s.usageLines() {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	if s.positional != nil {
		fmt.Fprintf(&sb, "  %-40s %s\n", s.positional.key, s.positional.desc)
	}
	for _, line := range s.descLines() {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func generalHelp(voc *vocab.Vocabulary) string {
	var sb strings.Builder
	sb.WriteString("Usage: cql-stress <command> [options]\n\nCommands:\n")
	for _, cmd := range workloadCommands {
		fmt.Fprintf(&sb, "  %-15s %s\n", cmd, commandDescriptions[cmd])
	}
	fmt.Fprintf(&sb, "  %-15s %s\n", "print", "Inspect the output of a distribution definition")
	fmt.Fprintf(&sb, "  %-15s %s\n", "version", "Print the version and exit")
	fmt.Fprintf(&sb, "  %-15s %s\n", "help", "Print help for a command or option group")
	sb.WriteString("\nOption groups:\n")
	for _, name := range groupOrder {
		s := groups[name].build(voc)
		fmt.Fprintf(&sb, "  %-15s %s\n", name, s.desc)
	}
	sb.WriteString("\nRun `help <command>` or `help <-option>` for details.\n")
	return sb.String()
}
