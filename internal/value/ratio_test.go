package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scylladb/cql-stress/internal/diag"
	"github.com/scylladb/cql-stress/internal/vocab"
)

func TestParseRatioMap(t *testing.T) {
	voc := vocab.Default()

	t.Run("read write", func(t *testing.T) {
		c := cursorFor(t, "(read=2,write=1)")
		r, err := ParseRatioMap(c, "ratio", voc.IsMixedOperation)
		require.NoError(t, err)
		assert.Equal(t, int64(2), r.Weight("read"))
		assert.Equal(t, int64(1), r.Weight("write"))
		assert.Equal(t, "(read=2,write=1)", r.String())
	})

	t.Run("case folded keys", func(t *testing.T) {
		r, err := ParseRatioMap(cursorFor(t, "(READ=1)"), "ratio", voc.IsMixedOperation)
		require.NoError(t, err)
		assert.Equal(t, int64(1), r.Weight("read"))
	})

	t.Run("open membership", func(t *testing.T) {
		r, err := ParseRatioMap(cursorFor(t, "(insert=2,select1=1)"), "ops", nil)
		require.NoError(t, err)
		assert.Equal(t, int64(2), r.Weight("insert"))
	})

	testCases := []struct {
		name  string
		input string
		kind  diag.Kind
	}{
		{"empty map", "()", diag.RangeViolation},
		{"unknown operation", "(help=1)", diag.UnknownIdentifier},
		{"duplicate operation", "(read=1,read=2)", diag.DuplicateKey},
		{"zero weight", "(read=0)", diag.RangeViolation},
		{"missing weight", "(read=,write=1)", diag.TypeMismatch},
		{"missing assign", "(read 1)", diag.SyntaxError},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := cursorFor(t, tc.input)
			_, err := ParseRatioMap(c, "ratio", voc.IsMixedOperation)
			requireKind(t, err, tc.kind)
			assert.Equal(t, 0, c.Mark())
		})
	}
}

func TestParseKeyValueBlock(t *testing.T) {
	voc := vocab.Default()

	t.Run("replication", func(t *testing.T) {
		b, err := ParseKeyValueBlock(cursorFor(t, "(strategy=NetworkTopologyStrategy,factor=3)"),
			"replication", voc.LookupReplicationKey)
		require.NoError(t, err)
		strategy, ok := b.Get("strategy")
		require.True(t, ok)
		assert.Equal(t, "NetworkTopologyStrategy", strategy)
		factor, ok := b.Get("factor")
		require.True(t, ok)
		assert.Equal(t, "3", factor)
	})

	t.Run("alias resolves to canonical key", func(t *testing.T) {
		b, err := ParseKeyValueBlock(cursorFor(t, "(replication_factor=3)"),
			"replication", voc.LookupReplicationKey)
		require.NoError(t, err)
		_, ok := b.Get("factor")
		assert.True(t, ok)
	})

	t.Run("alias conflicts with canonical spelling", func(t *testing.T) {
		_, err := ParseKeyValueBlock(cursorFor(t, "(factor=1,replication_factor=3)"),
			"replication", voc.LookupReplicationKey)
		requireKind(t, err, diag.DuplicateKey)
	})

	t.Run("empty block is permitted", func(t *testing.T) {
		b, err := ParseKeyValueBlock(cursorFor(t, "()"), "replication", voc.LookupReplicationKey)
		require.NoError(t, err)
		assert.Empty(t, b.Entries)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := ParseKeyValueBlock(cursorFor(t, "(class=SimpleStrategy)"),
			"replication", voc.LookupReplicationKey)
		requireKind(t, err, diag.UnknownIdentifier)
	})

	t.Run("stray token after value", func(t *testing.T) {
		c := cursorFor(t, "(factor=1,=)")
		_, err := ParseKeyValueBlock(c, "replication", voc.LookupReplicationKey)
		requireKind(t, err, diag.SyntaxError)
		assert.Equal(t, 0, c.Mark())
	})
}

func TestParseHostList(t *testing.T) {
	t.Run("single host", func(t *testing.T) {
		hosts, err := ParseHostList(cursorFor(t, "127.0.0.1"), "hosts")
		require.NoError(t, err)
		assert.Equal(t, []string{"127.0.0.1"}, hosts)
	})

	t.Run("list with ports", func(t *testing.T) {
		hosts, err := ParseHostList(cursorFor(t, "db1:9042,db2:9042,10.0.0.3"), "hosts")
		require.NoError(t, err)
		assert.Equal(t, []string{"db1:9042", "db2:9042", "10.0.0.3"}, hosts)
	})

	t.Run("trailing comma", func(t *testing.T) {
		c := cursorFor(t, "db1,")
		_, err := ParseHostList(c, "hosts")
		requireKind(t, err, diag.SyntaxError)
		assert.Equal(t, 0, c.Mark())
	})

	t.Run("comma before group name", func(t *testing.T) {
		_, err := ParseHostList(cursorFor(t, "db1, -rate"), "hosts")
		requireKind(t, err, diag.SyntaxError)
	})
}
