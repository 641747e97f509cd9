package settings

import (
	"github.com/scylladb/cql-stress/internal/diag"
	"github.com/scylladb/cql-stress/internal/vocab"
)

// RateOptions describes the thread count and rate limiting of the run.
// Either the fixed alternative (Threads, optionally rate-limited) or the
// auto alternative (thread count searched between MinThreads and
// MaxThreads) is active.
type RateOptions struct {
	// Fixed alternative.
	Threads   int64
	OpsPerSec int64 // 0 means unthrottled
	// FixedCoordination pins the coordinated-omission target to OpsPerSec
	// instead of treating it as an upper bound.
	FixedCoordination bool

	// Auto alternative.
	Auto       bool
	MinThreads int64
	MaxThreads int64
}

// AutoMode reports whether the auto alternative is active.
func (r *RateOptions) AutoMode() bool { return r.Threads == 0 }

func buildRateSchema(voc *vocab.Vocabulary) *schema {
	return &schema{
		name: "-rate",
		desc: "Thread count, rate limiting and automatic thread ramping",
		keys: []*keySpec{
			{key: "threads", op: "=", kind: kindCount,
				desc: "Run this many clients concurrently"},
			{key: "throttle", op: "=", kind: kindRate,
				desc: "Throttle total operations per second across all clients to a maximum rate (or less)"},
			{key: "fixed", op: "=", kind: kindRate,
				desc: "Expect this rate of operations per second and report latency relative to it"},
			{key: "threads", op: ">=", kind: kindCount, def: "4",
				desc: "Run at least this many clients while ramping"},
			{key: "threads", op: "<=", kind: kindCount, def: "1000",
				desc: "Run at most this many clients while ramping"},
			{key: "auto", kind: kindFlag,
				desc: "Stop increasing threads once throughput saturates"},
		},
		usages: []usage{
			{slots: []string{"threads=", "throttle=", "fixed="}, required: []string{"threads="}},
			{slots: []string{"threads>=", "threads<=", "auto"}},
		},
	}
}

func materializeRate(cfg *Configuration, got values, voc *vocab.Vocabulary) error {
	s := buildRateSchema(voc)
	u, err := s.resolveUsage(got)
	if err != nil {
		return err
	}

	opts := RateOptions{}
	if containsString(u.slots, "threads=") {
		opts.Threads = got.count("threads=", 0)
		if opts.Threads <= 0 {
			return diag.Errorf(diag.RangeViolation, "threads",
				"thread count must be positive, got %d", opts.Threads)
		}
		if got.has("throttle=") && got.has("fixed=") {
			return diag.Errorf(diag.DuplicateKey, "-rate",
				"throttle and fixed are mutually exclusive")
		}
		switch {
		case got.has("throttle="):
			opts.OpsPerSec = got["throttle="].(int64)
		case got.has("fixed="):
			opts.OpsPerSec = got["fixed="].(int64)
			opts.FixedCoordination = true
		}
		if (got.has("throttle=") || got.has("fixed=")) && opts.OpsPerSec <= 0 {
			return diag.Errorf(diag.RangeViolation, "-rate",
				"operation rate must be positive, got %d", opts.OpsPerSec)
		}
	} else {
		opts.MinThreads = got.count("threads>=", 4)
		opts.MaxThreads = got.count("threads<=", 1000)
		opts.Auto = got.flag("auto")
		if opts.MinThreads <= 0 || opts.MaxThreads <= 0 {
			return diag.Errorf(diag.RangeViolation, "threads",
				"thread bounds must be positive")
		}
		if opts.MinThreads > opts.MaxThreads {
			return diag.Errorf(diag.RangeViolation, "threads",
				"minimum thread count %d exceeds maximum %d",
				opts.MinThreads, opts.MaxThreads)
		}
	}
	cfg.Rate = opts
	return nil
}
