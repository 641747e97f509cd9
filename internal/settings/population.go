package settings

import (
	"github.com/scylladb/cql-stress/internal/diag"
	"github.com/scylladb/cql-stress/internal/value"
	"github.com/scylladb/cql-stress/internal/vocab"
)

// PopulationOptions describes how partition keys are drawn.
type PopulationOptions struct {
	// Seed is the distribution partition keys are sampled from. When the
	// sequence alternative was used it is a SEQ distribution over the
	// given range.
	Seed value.DistributionSpec
	// ReadLookback, when set, bounds how far behind the write position
	// reads may sample.
	ReadLookback *value.DistributionSpec
	// NoWrap stops a sequence run at the end of the range instead of
	// wrapping around.
	NoWrap bool
}

func buildPopulationSchema(voc *vocab.Vocabulary) *schema {
	return &schema{
		name: "-pop",
		desc: "Population distribution and intra-partition visit order",
		keys: []*keySpec{
			{key: "seq", op: "=", kind: kindRange, def: "1..1000000",
				desc: "Generate all seeds in sequence over the given range"},
			{key: "no-wrap", kind: kindFlag,
				desc: "Terminate the run when the sequence is exhausted instead of wrapping"},
			{key: "read-lookback", op: "=", kind: kindDist,
				desc: "Distribution of how far behind the write position reads may look"},
			{key: "dist", op: "=", kind: kindDist,
				desc: "Deterministically sample seeds from this distribution"},
		},
		usages: []usage{
			{slots: []string{"seq=", "no-wrap", "read-lookback="}},
			{slots: []string{"dist="}, required: []string{"dist="}},
		},
	}
}

func materializePopulation(cfg *Configuration, got values, voc *vocab.Vocabulary) error {
	s := buildPopulationSchema(voc)
	u, err := s.resolveUsage(got)
	if err != nil {
		return err
	}

	opts := PopulationOptions{}
	if containsString(u.slots, "dist=") {
		opts.Seed = got["dist="].(value.DistributionSpec)
	} else {
		r := value.Range{Min: 1, Max: 1000000}
		if cfg.Count != nil {
			r.Max = *cfg.Count
		}
		if x, ok := got["seq="]; ok {
			r = x.(value.Range)
		}
		opts.Seed = value.DistributionSpec{Name: "SEQ", Range: &r}
		opts.NoWrap = got.flag("no-wrap")
		if x, ok := got["read-lookback="]; ok {
			d := x.(value.DistributionSpec)
			opts.ReadLookback = &d
		}
	}
	if opts.ReadLookback != nil && !got.has("seq=") {
		return diag.Errorf(diag.ArityMismatch, "-pop",
			"read-lookback requires an explicit seq= range")
	}
	cfg.Population = opts
	return nil
}
