package settings

import (
	"github.com/scylladb/cql-stress/internal/diag"
	"github.com/scylladb/cql-stress/internal/vocab"
)

// ModeOptions configures the CQL connection.
type ModeOptions struct {
	// Compression is the canonical connection compression algorithm,
	// "none" when disabled.
	Compression string
	Username    string
	Password    string
	// ConnectionsPerHost caps the pool size per node; 0 leaves the
	// driver default.
	ConnectionsPerHost int64
	// ConnectionsPerShard caps the pool size per shard on clusters that
	// expose shard awareness.
	ConnectionsPerShard int64
}

func buildModeSchema(voc *vocab.Vocabulary) *schema {
	return &schema{
		name: "-mode",
		desc: "CQL connection options",
		keys: []*keySpec{
			{key: "cql3", kind: kindFlag,
				desc: "Accepted for compatibility; CQL3 is the only supported protocol"},
			{key: "native", kind: kindFlag,
				desc: "Accepted for compatibility; the native protocol is always used"},
			{key: "compression", op: "=", kind: kindEnum,
				enum: voc.CompressionAlgorithms, def: "none",
				desc: "Compression algorithm of the connection"},
			{key: "user", op: "=", kind: kindWord,
				desc: "Username for password authentication"},
			{key: "password", op: "=", kind: kindWord,
				desc: "Password for password authentication"},
			{key: "connectionsPerHost", op: "=", kind: kindCount,
				desc: "Number of connections per host"},
			{key: "connectionsPerShard", op: "=", kind: kindCount, def: "1",
				desc: "Number of connections per shard"},
		},
		usages: []usage{
			{slots: []string{"cql3", "native", "compression=", "user=", "password=", "connectionsPerHost="}},
			{slots: []string{"cql3", "native", "compression=", "user=", "password=", "connectionsPerShard="}},
		},
	}
}

func materializeMode(cfg *Configuration, got values, voc *vocab.Vocabulary) error {
	s := buildModeSchema(voc)
	if _, err := s.resolveUsage(got); err != nil {
		return err
	}

	opts := ModeOptions{
		Compression: got.word("compression=", "none"),
		Username:    got.word("user=", ""),
		Password:    got.word("password=", ""),
	}
	if (opts.Username == "") != (opts.Password == "") {
		return diag.Errorf(diag.ArityMismatch, "-mode",
			"user and password must be supplied together")
	}
	if got.has("connectionsPerHost=") {
		opts.ConnectionsPerHost = got.count("connectionsPerHost=", 0)
		if opts.ConnectionsPerHost <= 0 {
			return diag.Errorf(diag.RangeViolation, "connectionsPerHost",
				"connection count must be positive, got %d", opts.ConnectionsPerHost)
		}
	} else {
		opts.ConnectionsPerShard = got.count("connectionsPerShard=", 1)
		if opts.ConnectionsPerShard <= 0 {
			return diag.Errorf(diag.RangeViolation, "connectionsPerShard",
				"connection count must be positive, got %d", opts.ConnectionsPerShard)
		}
	}
	cfg.Mode = opts
	return nil
}
