package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scylladb/cql-stress/internal/diag"
	"github.com/scylladb/cql-stress/internal/lexer"
	"github.com/scylladb/cql-stress/internal/vocab"
)

// DistributionSpec is a parsed distribution descriptor: a canonical name, an
// optional inversion marker, and the argument list validated against the
// name's declared shape. The parameters are carried opaquely; sampling is
// the business of the generator subsystem.
type DistributionSpec struct {
	Name     string // canonical, upper-case
	Inverted bool
	Range    *Range    // nil when the shape takes scalars only
	Scalars  []float64 // scalar arguments, in order
}

// String renders the descriptor in canonical grammar spelling, e.g.
// GAUSSIAN(1..10,2) or ~EXP(1..100).
func (d DistributionSpec) String() string {
	var sb strings.Builder
	if d.Inverted {
		sb.WriteByte('~')
	}
	sb.WriteString(d.Name)
	sb.WriteByte('(')
	needComma := false
	if d.Range != nil {
		sb.WriteString(d.Range.String())
		needComma = true
	}
	for _, s := range d.Scalars {
		if needComma {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(s, 'f', -1, 64))
		needComma = true
	}
	sb.WriteByte(')')
	return sb.String()
}

// ParseDistribution consumes `[~]NAME(args)`. The name is matched
// case-insensitively against the vocabulary; its shape dictates whether the
// first argument is a range and how many scalars may follow. Unknown names
// are UnknownIdentifier, shape violations ArityMismatch.
func ParseDistribution(c *Cursor, v *vocab.Vocabulary, key string) (DistributionSpec, error) {
	mark := c.Mark()
	spec, err := parseDistribution(c, v, key)
	if err != nil {
		c.Reset(mark)
		return DistributionSpec{}, err
	}
	return spec, nil
}

func parseDistribution(c *Cursor, v *vocab.Vocabulary, key string) (DistributionSpec, error) {
	var spec DistributionSpec
	if c.Peek().IsPunct('~') {
		c.Next()
		spec.Inverted = true
	}
	name := c.Peek()
	if !name.IsWord() {
		return spec, diag.Errorf(diag.TypeMismatch, key,
			"expected a distribution name, got %s", name)
	}
	canonical, shape, ok := v.LookupDistribution(name.Text)
	if !ok {
		return spec, diag.Errorf(diag.UnknownIdentifier, name.Text,
			"unknown distribution name")
	}
	c.Next()
	spec.Name = canonical

	if !c.Peek().IsPunct('(') {
		return spec, diag.Errorf(diag.SyntaxError, name.Text,
			"distribution %s is missing its argument list", canonical)
	}
	c.Next()

	if shape.HasRange {
		r, err := ParseRange(c, canonical)
		if err != nil {
			if d, isDiag := err.(*diag.Error); isDiag && d.Kind == diag.TypeMismatch {
				// A scalar where the range is required, e.g. UNIFORM(50).
				return spec, diag.Errorf(diag.ArityMismatch, canonical,
					"%s requires a min..max range as its first argument", canonical)
			}
			return spec, err
		}
		spec.Range = &r
	}

	for !c.Peek().IsPunct(')') {
		if spec.Range != nil || len(spec.Scalars) > 0 {
			if c.Peek().IsOp(lexer.OpRange) {
				return spec, diag.Errorf(diag.ArityMismatch, canonical,
					"%s does not take a range here", canonical)
			}
			if !c.Peek().IsPunct(',') {
				return spec, diag.Errorf(diag.SyntaxError, canonical,
					"expected ',' or ')' in %s argument list, got %s", canonical, c.Peek())
			}
			c.Next()
		}
		s, err := parseDistributionScalar(c, canonical)
		if err != nil {
			return spec, err
		}
		spec.Scalars = append(spec.Scalars, s)
		if len(spec.Scalars) > shape.MaxScalars {
			return spec, arityError(canonical, shape)
		}
	}
	c.Next() // ')'

	if len(spec.Scalars) < shape.MinScalars {
		return spec, arityError(canonical, shape)
	}
	return spec, nil
}

// parseDistributionScalar accepts a count-family scalar (suffix expanded) or
// a plain float.
func parseDistributionScalar(c *Cursor, name string) (float64, error) {
	n, err := ParseNumber(c, name)
	if err != nil {
		if c.Peek().Kind == lexer.EOF {
			return 0, diag.Errorf(diag.SyntaxError, name,
				"unterminated argument list for %s", name)
		}
		return 0, diag.Errorf(diag.ArityMismatch, name,
			"expected a numeric argument for %s, got %s", name, c.Peek())
	}
	if n.IsFloat {
		if n.Suffix != "" {
			return 0, diag.Errorf(diag.TypeMismatch, name,
				"no unit suffix permitted on fractional argument %s", n.Raw)
		}
		return n.Float64(), nil
	}
	v, err := n.Count(name)
	if err != nil {
		return 0, err
	}
	return float64(v), nil
}

func arityError(name string, shape vocab.DistributionShape) *diag.Error {
	form := describeShape(name, shape)
	return diag.Errorf(diag.ArityMismatch, name,
		"wrong number of arguments, expected %s", form)
}

func describeShape(name string, shape vocab.DistributionShape) string {
	parts := []string{}
	if shape.HasRange {
		parts = append(parts, "min..max")
	}
	for i := 0; i < shape.MinScalars; i++ {
		parts = append(parts, "val")
	}
	for i := shape.MinScalars; i < shape.MaxScalars; i++ {
		parts = append(parts, "[val]")
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(parts, ","))
}
