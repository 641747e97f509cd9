package settings

import (
	"fmt"

	"github.com/scylladb/cql-stress/internal/diag"
	"github.com/scylladb/cql-stress/internal/value"
	"github.com/scylladb/cql-stress/internal/vocab"
)

// ColumnOptions describes the shape of the generated rows.
type ColumnOptions struct {
	// Names lists the value column names, in order.
	Names []string
	// Size is the distribution of the byte size of each column value.
	Size value.DistributionSpec
}

func buildColumnSchema(voc *vocab.Vocabulary) *schema {
	return &schema{
		name: "-col",
		desc: "Column count, names and value sizes",
		keys: []*keySpec{
			{key: "n", op: "=", kind: kindCount, def: "5",
				desc: "Number of value columns per row"},
			{key: "names", op: "=", kind: kindWordList,
				desc: "Comma-separated column names; overrides n="},
			{key: "size", op: "=", kind: kindDist, def: "FIXED(34)",
				desc: "Distribution of the byte size of column values"},
		},
		usages: []usage{
			{slots: []string{"n=", "size="}},
			{slots: []string{"names=", "size="}, required: []string{"names="}},
		},
	}
}

func materializeColumn(cfg *Configuration, got values, voc *vocab.Vocabulary) error {
	s := buildColumnSchema(voc)
	u, err := s.resolveUsage(got)
	if err != nil {
		return err
	}

	opts := ColumnOptions{
		Size: value.DistributionSpec{Name: "FIXED", Scalars: []float64{34}},
	}
	if x, ok := got["size="]; ok {
		opts.Size = x.(value.DistributionSpec)
	}
	if containsString(u.slots, "names=") {
		opts.Names = got["names="].([]string)
		if len(opts.Names) == 0 {
			return diag.Errorf(diag.RangeViolation, "names",
				"at least one column name is required")
		}
	} else {
		n := got.count("n=", 5)
		if n <= 0 {
			return diag.Errorf(diag.RangeViolation, "n",
				"column count must be positive, got %d", n)
		}
		for i := int64(0); i < n; i++ {
			opts.Names = append(opts.Names, fmt.Sprintf("C%d", i))
		}
	}
	cfg.Column = opts
	return nil
}
