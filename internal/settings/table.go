// Package settings implements the command grammar of the tool: the command
// dispatcher, the per-command and per-group parameter tables, the semantic
// validator and the immutable Configuration it produces.
//
// The grammar is data-driven. Every command and every option group owns a
// schema: an ordered table mapping parameter slots (key plus permitted
// operator) to the value parser that applies, together with the usage
// alternatives that declare which slots may appear together. Parsing fails
// fast: the first diagnostic anywhere aborts the whole parse.
package settings

import (
	"fmt"
	"strings"

	"github.com/scylladb/cql-stress/internal/diag"
	"github.com/scylladb/cql-stress/internal/lexer"
	"github.com/scylladb/cql-stress/internal/value"
	"github.com/scylladb/cql-stress/internal/vocab"
)

// valueKind selects the value parser for a slot.
type valueKind int

const (
	kindFlag valueKind = iota // bare presence flag, no value
	kindCount
	kindUnitInterval // float in (0,1)
	kindFloat
	kindDuration // s/m/h suffix required
	kindInterval // ms/s suffix, bare means seconds
	kindRate     // N/s
	kindEnum
	kindWord     // free-form ident or quoted literal
	kindWordList // comma-separated idents
	kindBool     // true/false/1/0
	kindDist
	kindRange
	kindRatio // name(key=weight,...)
	kindBlock // name(key=value,...)
)

// keySpec is one parameter slot of a schema: a key, the single operator it
// may be combined with (empty for flags and call-form parameters), and how
// its value parses.
type keySpec struct {
	key    string // exact spelling, e.g. "threads", "no-warmup", "ratio"
	op     string // "", "=", "<", ">", "<=", ">="
	kind   valueKind
	enum   []string                    // kindEnum: admissible members
	look   func(string) (string, bool) // kindBlock: key vocabulary lookup
	member func(string) bool           // kindRatio: membership set, nil accepts any
	desc   string
	def    string // default spelling shown in help, "" when none
}

// slot is the unique name of the spec inside its scope: key plus operator.
func (k *keySpec) slot() string { return k.key + k.op }

// usageText renders the spec the way the legacy usage lines spell it.
func (k *keySpec) usageText() string {
	switch k.kind {
	case kindFlag:
		return k.key
	case kindRatio, kindBlock:
		return k.key + "(?)"
	default:
		return k.key + k.op + "?"
	}
}

// usage is one alternative of mutually compatible slots. A parse satisfies a
// usage when every supplied slot belongs to it and every required slot was
// supplied.
type usage struct {
	slots    []string
	required []string
}

// schema is the parameter table of one command or option group.
type schema struct {
	name string // "read", "-rate", ...
	desc string
	keys []*keySpec
	// usages lists the mutually exclusive alternatives; empty means all
	// slots form one implicit alternative with no required slots.
	usages []usage
	// positional, when non-nil, consumes tokens that match no key (the
	// -node host list). At most one positional value per scope.
	positional *keySpec
}

func (s *schema) find(key string) []*keySpec {
	var specs []*keySpec
	for _, k := range s.keys {
		if k.key == key {
			specs = append(specs, k)
		}
	}
	return specs
}

// values is the raw parse product of one scope: slot name to typed value.
type values map[string]any

func (v values) has(slot string) bool { _, ok := v[slot]; return ok }

func (v values) count(slot string, def int64) int64 {
	if x, ok := v[slot]; ok {
		return x.(int64)
	}
	return def
}

func (v values) word(slot string, def string) string {
	if x, ok := v[slot]; ok {
		return x.(string)
	}
	return def
}

func (v values) flag(slot string) bool {
	_, ok := v[slot]
	return ok
}

// parse consumes parameters for this schema until the next dash-prefixed
// group token or end of input. A non-nil fallback schema (the command's
// top-level table, while parsing a group) catches keys the group does not
// know: top-level parameters may appear after any group, and their
// once-per-command-line rule keeps holding because fallbackGot is the
// shared top-level value map.
func (s *schema) parse(c *value.Cursor, voc *vocab.Vocabulary, got values, fallback *schema, fallbackGot values) error {
	for {
		t := c.Peek()
		if t.Kind == lexer.EOF || isGroupToken(t) {
			return nil
		}
		if t.IsWord() && len(s.find(t.Text)) == 0 && fallback != nil && len(fallback.find(t.Text)) > 0 {
			if err := fallback.parseOne(c, voc, fallbackGot); err != nil {
				return err
			}
			continue
		}
		if err := s.parseOne(c, voc, got); err != nil {
			return err
		}
	}
}

func (s *schema) parseOne(c *value.Cursor, voc *vocab.Vocabulary, got values) error {
	t := c.Peek()
	if t.Kind != lexer.Ident && t.Kind != lexer.Str {
		if s.positional != nil {
			return s.parsePositional(c, got)
		}
		return diag.Errorf(diag.SyntaxError, s.name,
			"expected a parameter, got %s", t)
	}

	specs := s.find(t.Text)
	if len(specs) == 0 {
		if s.positional != nil {
			return s.parsePositional(c, got)
		}
		return diag.Errorf(diag.UnknownIdentifier, t.Text,
			"unknown %s parameter", s.name)
	}

	next := c.PeekAt(1)
	var spec *keySpec
	switch {
	case next.Kind == lexer.Op:
		for _, k := range specs {
			if k.op == next.Text {
				spec = k
			}
		}
		if spec == nil {
			if specs[0].kind == kindFlag {
				return diag.Errorf(diag.TypeMismatch, t.Text,
					"%s is a flag and takes no value", t.Text)
			}
			return diag.Errorf(diag.TypeMismatch, t.Text,
				"operator %q is not permitted for %s", next.Text, t.Text)
		}
		c.Next() // key
		c.Next() // operator
	case next.IsPunct('('):
		for _, k := range specs {
			if k.kind == kindRatio || k.kind == kindBlock {
				spec = k
			}
		}
		if spec == nil {
			return diag.Errorf(diag.TypeMismatch, t.Text,
				"%s does not take a parenthesized list", t.Text)
		}
		c.Next() // key; the '(' is consumed by the block parser
	default:
		for _, k := range specs {
			if k.kind == kindFlag {
				spec = k
			}
		}
		if spec == nil {
			return diag.Errorf(diag.TypeMismatch, t.Text,
				"%s requires a value", t.Text)
		}
		c.Next()
	}

	if got.has(spec.slot()) {
		return diag.Errorf(diag.DuplicateKey, t.Text,
			"%s supplied more than once", spec.slot())
	}

	v, err := spec.parseValue(c, voc)
	if err != nil {
		return err
	}
	got[spec.slot()] = v
	return nil
}

func (s *schema) parsePositional(c *value.Cursor, got values) error {
	if got.has(s.positional.slot()) {
		return diag.Errorf(diag.DuplicateKey, s.positional.key,
			"%s supplied more than once", s.positional.key)
	}
	hosts, err := value.ParseHostList(c, s.positional.key)
	if err != nil {
		return err
	}
	got[s.positional.slot()] = hosts
	return nil
}

func (k *keySpec) parseValue(c *value.Cursor, voc *vocab.Vocabulary) (any, error) {
	switch k.kind {
	case kindFlag:
		return true, nil
	case kindCount:
		return value.ParseCount(c, k.key)
	case kindFloat:
		return value.ParseFloat(c, k.key)
	case kindUnitInterval:
		f, err := value.ParseFloat(c, k.key)
		if err != nil {
			return nil, err
		}
		if f <= 0 || f >= 1 {
			return nil, diag.Errorf(diag.RangeViolation, k.key,
				"value must lie strictly between 0 and 1, got %v", f)
		}
		return f, nil
	case kindDuration:
		return value.ParseDuration(c, k.key)
	case kindInterval:
		return value.ParseInterval(c, k.key)
	case kindRate:
		return value.ParseRate(c, k.key)
	case kindEnum:
		t := c.Peek()
		if !t.IsWord() {
			return nil, diag.Errorf(diag.TypeMismatch, k.key,
				"expected one of %s, got %s", strings.Join(k.enum, "|"), t)
		}
		canonical, ok := vocab.CanonicalEnum(t.Text, k.enum)
		if !ok {
			return nil, diag.Errorf(diag.UnknownIdentifier, t.Text,
				"invalid %s value; must be one of %s", k.key, strings.Join(k.enum, "|"))
		}
		c.Next()
		return canonical, nil
	case kindWord:
		t := c.Peek()
		if !t.IsWord() {
			return nil, diag.Errorf(diag.TypeMismatch, k.key,
				"expected a value, got %s", t)
		}
		c.Next()
		return t.Text, nil
	case kindWordList:
		return value.ParseCommaList(c, k.key)
	case kindBool:
		t := c.Peek()
		switch {
		case t.IsWord() && strings.EqualFold(t.Text, "true"),
			t.Kind == lexer.Number && t.Text == "1":
			c.Next()
			return true, nil
		case t.IsWord() && strings.EqualFold(t.Text, "false"),
			t.Kind == lexer.Number && t.Text == "0":
			c.Next()
			return false, nil
		}
		return nil, diag.Errorf(diag.TypeMismatch, k.key,
			"expected true, false, 1 or 0, got %s", t)
	case kindDist:
		return value.ParseDistribution(c, voc, k.key)
	case kindRange:
		return value.ParseRange(c, k.key)
	case kindRatio:
		return value.ParseRatioMap(c, k.key, k.member)
	case kindBlock:
		return value.ParseKeyValueBlock(c, k.key, k.look)
	}
	return nil, diag.Errorf(diag.SyntaxError, k.key, "internal: unhandled value kind")
}

// resolveUsage finds the usage alternative satisfied by the supplied slots.
// Violations surface as DuplicateKey (two slots from exclusive alternatives)
// or ArityMismatch (a required slot missing from the only viable
// alternative).
func (s *schema) resolveUsage(got values) (usage, error) {
	if len(s.usages) == 0 {
		all := usage{}
		for _, k := range s.keys {
			all.slots = append(all.slots, k.slot())
		}
		return all, nil
	}

	best, bestCovered := s.usages[0], -1
	for _, u := range s.usages {
		uncovered := uncoveredSlots(got, u)
		if len(uncovered) > 0 {
			if covered := len(got) - len(uncovered); covered > bestCovered {
				best, bestCovered = u, covered
			}
			continue
		}
		missing := missingRequired(got, u)
		if len(missing) > 0 {
			if covered := len(got); covered > bestCovered {
				best, bestCovered = u, covered
			}
			continue
		}
		return u, nil
	}

	if uncovered := uncoveredSlots(got, best); len(uncovered) > 0 {
		off := uncovered[0]
		if partner := conflictPartner(s, got, off); partner != "" {
			return usage{}, diag.Errorf(diag.DuplicateKey, off,
				"%s and %s are mutually exclusive", off, partner)
		}
		return usage{}, diag.Errorf(diag.DuplicateKey, off,
			"%s cannot be combined with the other supplied %s parameters", off, s.name)
	}
	missing := missingRequired(got, best)
	return usage{}, diag.Errorf(diag.ArityMismatch, s.name,
		"missing required parameter %s; see `help %s`", strings.Join(missing, ", "), s.name)
}

func uncoveredSlots(got values, u usage) []string {
	var out []string
	for slot := range got {
		if !containsString(u.slots, slot) {
			out = append(out, slot)
		}
	}
	return out
}

func missingRequired(got values, u usage) []string {
	var out []string
	for _, slot := range u.required {
		if !got.has(slot) {
			out = append(out, slot)
		}
	}
	return out
}

// conflictPartner looks for a supplied slot that never shares a usage with
// off, to name both sides of the conflict in the diagnostic.
func conflictPartner(s *schema, got values, off string) string {
	for slot := range got {
		if slot == off {
			continue
		}
		together := false
		for _, u := range s.usages {
			if containsString(u.slots, off) && containsString(u.slots, slot) {
				together = true
				break
			}
		}
		if !together {
			return slot
		}
	}
	return ""
}

func containsString(set []string, s string) bool {
	for _, m := range set {
		if m == s {
			return true
		}
	}
	return false
}

func isGroupToken(t lexer.Token) bool {
	return t.Kind == lexer.Ident && strings.HasPrefix(t.Text, "-")
}

// usageLines renders the legacy "Usage:" lines of the schema.
func (s *schema) usageLines() []string {
	specOf := map[string]*keySpec{}
	for _, k := range s.keys {
		specOf[k.slot()] = k
	}
	render := func(u usage) string {
		var parts []string
		for _, slot := range u.slots {
			k := specOf[slot]
			if containsString(u.required, slot) {
				parts = append(parts, k.usageText())
			} else {
				parts = append(parts, "["+k.usageText()+"]")
			}
		}
		return fmt.Sprintf("Usage: %s %s", s.name, strings.Join(parts, " "))
	}

	if len(s.usages) == 0 {
		all := usage{}
		for _, k := range s.keys {
			all.slots = append(all.slots, k.slot())
		}
		return []string{render(all)}
	}
	var lines []string
	for _, u := range s.usages {
		lines = append(lines, render(u))
	}
	return lines
}

// descLines renders the per-key description block of the schema.
func (s *schema) descLines() []string {
	var lines []string
	for _, k := range s.keys {
		left := k.usageText()
		if k.def != "" {
			left += fmt.Sprintf(" (default=%s)", k.def)
		}
		lines = append(lines, fmt.Sprintf("  %-40s %s", left, k.desc))
	}
	return lines
}
