// Package vocab holds the "known names" tables the grammar is parameterized
// by: distribution names and their argument shapes, the operation-name sets
// used for ratio-map membership, per-block key vocabularies, and the
// enumerated values of the protocol-level parameters. The tables are plain
// data injected into the parser and validator, so tests can run the grammar
// against synthetic vocabularies without process-wide setup.
package vocab

import "strings"

// DistributionShape declares the argument form of one distribution name.
type DistributionShape struct {
	// HasRange is true when the first argument must be a `min..max` range.
	// When false, the arguments are scalars only (e.g. FIXED(n)).
	HasRange bool
	// MinScalars and MaxScalars bound the number of scalar arguments that
	// follow the range (or make up the whole list when HasRange is false).
	MinScalars int
	MaxScalars int
}

// Vocabulary is the read-only name-table bundle consumed by the parser and
// the semantic validator.
type Vocabulary struct {
	// Distributions maps canonical (upper-case) distribution names to
	// their shapes.
	Distributions map[string]DistributionShape
	// DistributionAliases maps alternative spellings to canonical names.
	DistributionAliases map[string]string

	// MixedOperations are the operation names admissible as ratio-map keys
	// of the mixed command.
	MixedOperations []string

	// ReplicationKeys and CompactionKeys are the fixed key vocabularies of
	// the -schema blocks. Aliases map alternative key spellings to their
	// canonical form; two spellings of the same canonical key conflict.
	ReplicationKeys    []string
	ReplicationAliases map[string]string
	CompactionKeys     []string

	ConsistencyLevels       []string
	SerialConsistencyLevels []string
	TruncateModes           []string
	CompressionAlgorithms   []string
}

// Default builds the production vocabulary, matching the legacy tool.
func Default() *Vocabulary {
	return &Vocabulary{
		Distributions: map[string]DistributionShape{
			"FIXED":    {HasRange: false, MinScalars: 1, MaxScalars: 1},
			"SEQ":      {HasRange: true, MinScalars: 0, MaxScalars: 1},
			"UNIFORM":  {HasRange: true, MinScalars: 0, MaxScalars: 0},
			"GAUSSIAN": {HasRange: true, MinScalars: 0, MaxScalars: 2},
			"EXP":      {HasRange: true, MinScalars: 0, MaxScalars: 0},
			"EXTREME":  {HasRange: true, MinScalars: 1, MaxScalars: 1},
		},
		DistributionAliases: map[string]string{
			"NORMAL": "GAUSSIAN",
			"GAUSS":  "GAUSSIAN",
		},
		MixedOperations: []string{"read", "write", "counter_read", "counter_write"},
		ReplicationKeys: []string{"strategy", "factor"},
		ReplicationAliases: map[string]string{
			"replication_factor": "factor",
		},
		CompactionKeys: []string{"strategy"},
		ConsistencyLevels: []string{
			"ONE", "QUORUM", "LOCAL_QUORUM", "EACH_QUORUM", "ALL", "ANY",
			"TWO", "THREE", "LOCAL_ONE", "SERIAL", "LOCAL_SERIAL",
		},
		SerialConsistencyLevels: []string{"SERIAL", "LOCAL_SERIAL"},
		TruncateModes:           []string{"never", "once", "always"},
		CompressionAlgorithms:   []string{"none", "lz4", "snappy"},
	}
}

// LookupDistribution resolves a (case-insensitive) distribution name to its
// canonical form and shape.
func (v *Vocabulary) LookupDistribution(name string) (string, DistributionShape, bool) {
	canonical := strings.ToUpper(name)
	if alias, ok := v.DistributionAliases[canonical]; ok {
		canonical = alias
	}
	shape, ok := v.Distributions[canonical]
	return canonical, shape, ok
}

// IsMixedOperation reports whether name is a valid ratio-map key for the
// mixed command.
func (v *Vocabulary) IsMixedOperation(name string) bool {
	return contains(v.MixedOperations, strings.ToLower(name))
}

// LookupReplicationKey resolves a replication-block key to its canonical
// spelling.
func (v *Vocabulary) LookupReplicationKey(key string) (string, bool) {
	if alias, ok := v.ReplicationAliases[key]; ok {
		key = alias
	}
	return key, contains(v.ReplicationKeys, key)
}

// LookupCompactionKey resolves a compaction-block key.
func (v *Vocabulary) LookupCompactionKey(key string) (string, bool) {
	return key, contains(v.CompactionKeys, key)
}

// CanonicalEnum matches value case-insensitively against members and returns
// the canonical spelling.
func CanonicalEnum(value string, members []string) (string, bool) {
	for _, m := range members {
		if strings.EqualFold(m, value) {
			return m, true
		}
	}
	return "", false
}

func contains(set []string, s string) bool {
	for _, m := range set {
		if m == s {
			return true
		}
	}
	return false
}
