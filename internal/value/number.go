package value

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/scylladb/cql-stress/internal/diag"
	"github.com/scylladb/cql-stress/internal/lexer"
)

// A parameter key declares its unit family through the parser it is bound
// to: ParseCount admits the decimal multipliers k, m and b, ParseDuration
// the time units s, m and h, and so on. The lexer accepts every suffix it
// knows; the family narrows that set per key, so `n=10m` is ten million
// operations while `duration=10m` is ten minutes and `keysize=10m` is
// rejected outright.

// SuffixedNumber is a numeric magnitude plus its raw unit suffix, before any
// family interpretation.
type SuffixedNumber struct {
	Raw      string // original spelling, for diagnostics and reserialization
	Suffix   string
	IsFloat  bool
	mantissa string
	value    float64
}

// Float64 returns the magnitude, without suffix expansion.
func (n SuffixedNumber) Float64() float64 { return n.value }

// integer returns the magnitude as a 64-bit integer. Literals that do not
// fit are a RangeViolation, never a silent wrap.
func (n SuffixedNumber) integer(key string) (int64, error) {
	v, err := strconv.ParseInt(n.mantissa, 10, 64)
	if err != nil {
		return 0, diag.Errorf(diag.RangeViolation, key,
			"%s overflows a 64-bit integer", n.Raw)
	}
	return v, nil
}

// ParseNumber consumes one Number token. Any other token kind fails with a
// TypeMismatch and leaves the cursor untouched.
func ParseNumber(c *Cursor, key string) (SuffixedNumber, error) {
	t := c.Peek()
	if t.Kind != lexer.Number {
		return SuffixedNumber{}, diag.Errorf(diag.TypeMismatch, key,
			"expected a number, got %s", t)
	}
	v, err := strconv.ParseFloat(t.Mantissa, 64)
	if err != nil {
		return SuffixedNumber{}, diag.Errorf(diag.SyntaxError, t.Text,
			"malformed numeric literal")
	}
	c.Next()
	return SuffixedNumber{Raw: t.Text, Suffix: t.Suffix, IsFloat: t.IsFloat, mantissa: t.Mantissa, value: v}, nil
}

// ParseCount consumes a number of the count family and expands the k/m/b
// multiplier. The legacy multipliers are decimal: k=10^3, m=10^6, b=10^9,
// for size-like parameters as well.
func ParseCount(c *Cursor, key string) (int64, error) {
	mark := c.Mark()
	n, err := ParseNumber(c, key)
	if err != nil {
		return 0, err
	}
	v, err := n.Count(key)
	if err != nil {
		c.Reset(mark)
		return 0, err
	}
	return v, nil
}

// Count interprets the number in the count family.
func (n SuffixedNumber) Count(key string) (int64, error) {
	if n.IsFloat {
		return 0, diag.Errorf(diag.TypeMismatch, key,
			"expected an integer count, got %s", n.Raw)
	}
	var mult int64
	switch n.Suffix {
	case "":
		mult = 1
	case "k":
		mult = 1_000
	case "m":
		mult = 1_000_000
	case "b":
		mult = 1_000_000_000
	default:
		return 0, diag.Errorf(diag.TypeMismatch, key,
			"unit suffix %q is not a count multiplier", n.Suffix)
	}
	v, err := n.integer(key)
	if err != nil {
		return 0, err
	}
	if v > math.MaxInt64/mult || v < math.MinInt64/mult {
		return 0, diag.Errorf(diag.RangeViolation, key,
			"count %s overflows a 64-bit integer", n.Raw)
	}
	return v * mult, nil
}

// ParseDuration consumes a number of the time family (s, m, h suffix). The
// suffix is mandatory, matching the legacy duration grammar.
func ParseDuration(c *Cursor, key string) (time.Duration, error) {
	mark := c.Mark()
	n, err := ParseNumber(c, key)
	if err != nil {
		return 0, err
	}
	d, err := n.Duration(key)
	if err != nil {
		c.Reset(mark)
		return 0, err
	}
	return d, nil
}

// Duration interprets the number in the time family.
func (n SuffixedNumber) Duration(key string) (time.Duration, error) {
	if n.IsFloat {
		return 0, diag.Errorf(diag.TypeMismatch, key,
			"expected an integer duration, got %s", n.Raw)
	}
	var unit time.Duration
	switch n.Suffix {
	case "s":
		unit = time.Second
	case "m":
		unit = time.Minute
	case "h":
		unit = time.Hour
	case "":
		return 0, diag.Errorf(diag.TypeMismatch, key,
			"duration %s is missing its unit (s, m or h)", n.Raw)
	default:
		return 0, diag.Errorf(diag.TypeMismatch, key,
			"unit suffix %q is not a time unit", n.Suffix)
	}
	return n.scaled(key, unit)
}

// scaled converts the integer magnitude into a duration, rejecting values
// whose product overflows.
func (n SuffixedNumber) scaled(key string, unit time.Duration) (time.Duration, error) {
	v, err := n.integer(key)
	if err != nil {
		return 0, err
	}
	if v > math.MaxInt64/int64(unit) || v < math.MinInt64/int64(unit) {
		return 0, diag.Errorf(diag.RangeViolation, key,
			"duration %s overflows a 64-bit integer", n.Raw)
	}
	return time.Duration(v) * unit, nil
}

// ParseInterval consumes a number of the millisecond family: `500ms`, `5s`,
// or a bare number of seconds (the -log interval grammar).
func ParseInterval(c *Cursor, key string) (time.Duration, error) {
	mark := c.Mark()
	n, err := ParseNumber(c, key)
	if err != nil {
		return 0, err
	}
	if n.IsFloat {
		c.Reset(mark)
		return 0, diag.Errorf(diag.TypeMismatch, key,
			"expected an integer interval, got %s", n.Raw)
	}
	var unit time.Duration
	switch n.Suffix {
	case "ms":
		unit = time.Millisecond
	case "s", "":
		unit = time.Second
	default:
		c.Reset(mark)
		return 0, diag.Errorf(diag.TypeMismatch, key,
			"unit suffix %q is not an interval unit", n.Suffix)
	}
	d, err := n.scaled(key, unit)
	if err != nil {
		c.Reset(mark)
		return 0, err
	}
	return d, nil
}

// ParseRate consumes a per-second rate: a number with the mandatory /s
// suffix (e.g. throttle=8000/s).
func ParseRate(c *Cursor, key string) (int64, error) {
	mark := c.Mark()
	n, err := ParseNumber(c, key)
	if err != nil {
		return 0, err
	}
	if n.IsFloat || n.Suffix != "/s" {
		c.Reset(mark)
		return 0, diag.Errorf(diag.TypeMismatch, key,
			"rate %s must be of the form N/s", n.Raw)
	}
	v, err := n.integer(key)
	if err != nil {
		c.Reset(mark)
		return 0, err
	}
	return v, nil
}

// ParseFloat consumes a dimensionless number (no suffix permitted).
func ParseFloat(c *Cursor, key string) (float64, error) {
	mark := c.Mark()
	n, err := ParseNumber(c, key)
	if err != nil {
		return 0, err
	}
	if n.Suffix != "" {
		c.Reset(mark)
		return 0, diag.Errorf(diag.TypeMismatch, key,
			"no unit suffix permitted here, got %s", n.Raw)
	}
	return n.Float64(), nil
}

// FormatCount renders a count the way the legacy echo does: plain digits.
func FormatCount(v int64) string { return strconv.FormatInt(v, 10) }

// FormatDuration renders a duration in the grammar's own spelling, using the
// largest exact unit.
func FormatDuration(d time.Duration) string {
	switch {
	case d%time.Hour == 0:
		return fmt.Sprintf("%dh", d/time.Hour)
	case d%time.Minute == 0:
		return fmt.Sprintf("%dm", d/time.Minute)
	default:
		return fmt.Sprintf("%ds", d/time.Second)
	}
}
