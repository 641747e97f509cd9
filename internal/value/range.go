package value

import (
	"fmt"

	"github.com/scylladb/cql-stress/internal/diag"
	"github.com/scylladb/cql-stress/internal/lexer"
)

// Range is an inclusive min..max pair. Bounds are count-family numbers, so
// `1..1m` means 1..1000000.
type Range struct {
	Min int64
	Max int64
}

// String renders the range in the grammar's own spelling.
func (r Range) String() string {
	return fmt.Sprintf("%d..%d", r.Min, r.Max)
}

// ParseRange consumes `min..max`. A bare scalar with no `..` following is
// not a range; the cursor is left untouched in that case so the caller may
// try the scalar production instead.
func ParseRange(c *Cursor, key string) (Range, error) {
	mark := c.Mark()
	min, err := ParseCount(c, key)
	if err != nil {
		return Range{}, err
	}
	if !c.Peek().IsOp(lexer.OpRange) {
		c.Reset(mark)
		return Range{}, diag.Errorf(diag.TypeMismatch, key,
			"expected a min..max range, got %s after %d", c.Peek(), min)
	}
	c.Next()
	max, err := ParseCount(c, key)
	if err != nil {
		c.Reset(mark)
		return Range{}, err
	}
	if min > max {
		c.Reset(mark)
		return Range{}, diag.Errorf(diag.RangeViolation, key,
			"range minimum %d exceeds maximum %d", min, max)
	}
	return Range{Min: min, Max: max}, nil
}
