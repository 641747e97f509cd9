package settings

import (
	"github.com/scylladb/cql-stress/internal/diag"
	"github.com/scylladb/cql-stress/internal/value"
	"github.com/scylladb/cql-stress/internal/vocab"
)

// SchemaOptions describes the keyspace and table layout the workload
// creates and populates.
type SchemaOptions struct {
	Keyspace            string
	ReplicationStrategy string
	ReplicationFactor   int64
	// CompactionStrategy is empty when the cluster default applies.
	CompactionStrategy string
	// Compression is the sstable compression class, empty for none.
	Compression string
}

func buildSchemaSchema(voc *vocab.Vocabulary) *schema {
	return &schema{
		name: "-schema",
		desc: "Keyspace replication, table compaction and compression",
		keys: []*keySpec{
			{key: "keyspace", op: "=", kind: kindWord, def: "keyspace1",
				desc: "Keyspace to use"},
			{key: "replication", kind: kindBlock, look: voc.LookupReplicationKey,
				def:  "replication(strategy=SimpleStrategy,factor=1)",
				desc: "Replication settings of the keyspace"},
			{key: "compaction", kind: kindBlock, look: voc.LookupCompactionKey,
				desc: "Compaction settings of the table"},
			{key: "compression", op: "=", kind: kindWord,
				desc: "SSTable compression class to use"},
		},
	}
}

func materializeSchema(cfg *Configuration, got values, voc *vocab.Vocabulary) error {
	opts := SchemaOptions{
		Keyspace:            got.word("keyspace=", "keyspace1"),
		ReplicationStrategy: "SimpleStrategy",
		ReplicationFactor:   1,
		Compression:         got.word("compression=", ""),
	}

	if x, ok := got["replication"]; ok {
		block := x.(value.KeyValueBlock)
		for _, e := range block.Entries {
			switch e.Key {
			case "strategy":
				if e.Num != nil {
					return diag.Errorf(diag.TypeMismatch, "strategy",
						"replication strategy must be a class name, got %q", e.Raw)
				}
				opts.ReplicationStrategy = e.Raw
			case "factor":
				if e.Num == nil {
					return diag.Errorf(diag.TypeMismatch, "factor",
						"replication factor must be an integer, got %q", e.Raw)
				}
				f, err := e.Num.Count("factor")
				if err != nil {
					return err
				}
				if f <= 0 {
					return diag.Errorf(diag.RangeViolation, "factor",
						"replication factor must be positive, got %d", f)
				}
				opts.ReplicationFactor = f
			}
		}
	}

	if x, ok := got["compaction"]; ok {
		block := x.(value.KeyValueBlock)
		for _, e := range block.Entries {
			if e.Key == "strategy" {
				opts.CompactionStrategy = e.Raw
			}
		}
	}

	cfg.Schema = opts
	return nil
}
