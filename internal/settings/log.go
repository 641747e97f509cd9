package settings

import (
	"time"

	"github.com/scylladb/cql-stress/internal/diag"
	"github.com/scylladb/cql-stress/internal/vocab"
)

// LogOptions configures run-time reporting.
type LogOptions struct {
	// HdrFile, when set, receives HDR histogram latency logs.
	HdrFile string
	// Interval is the period between progress reports.
	Interval time.Duration
}

func buildLogSchema(voc *vocab.Vocabulary) *schema {
	return &schema{
		name: "-log",
		desc: "Progress reporting and latency histograms",
		keys: []*keySpec{
			{key: "hdrfile", op: "=", kind: kindWord,
				desc: "Write HDR histogram latency logs to this file"},
			{key: "interval", op: "=", kind: kindInterval, def: "1s",
				desc: "Period between progress reports, in ms or s"},
		},
	}
}

func materializeLog(cfg *Configuration, got values, voc *vocab.Vocabulary) error {
	opts := LogOptions{
		HdrFile:  got.word("hdrfile=", ""),
		Interval: time.Second,
	}
	if x, ok := got["interval="]; ok {
		opts.Interval = x.(time.Duration)
	}
	if opts.Interval <= 0 {
		return diag.Errorf(diag.RangeViolation, "interval",
			"report interval must be positive, got %v", opts.Interval)
	}
	cfg.Log = opts
	return nil
}
