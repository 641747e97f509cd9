package settings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scylladb/cql-stress/internal/diag"
)

func TestRateGroup(t *testing.T) {
	t.Run("fixed coordination", func(t *testing.T) {
		cfg := parseLine(t, "write n=10 -rate threads=4 fixed=5000/s")
		assert.Equal(t, int64(4), cfg.Rate.Threads)
		assert.Equal(t, int64(5000), cfg.Rate.OpsPerSec)
		assert.True(t, cfg.Rate.FixedCoordination)
	})

	t.Run("auto bounds", func(t *testing.T) {
		cfg := parseLine(t, "write n=10 -rate threads>=16 threads<=32")
		assert.True(t, cfg.Rate.AutoMode())
		assert.Equal(t, int64(16), cfg.Rate.MinThreads)
		assert.Equal(t, int64(32), cfg.Rate.MaxThreads)
	})

	t.Run("inverted bounds", func(t *testing.T) {
		d := parseErr(t, "write n=10 -rate threads>=32 threads<=16")
		assert.Equal(t, diag.RangeViolation, d.Kind)
	})

	t.Run("throttle requires threads", func(t *testing.T) {
		d := parseErr(t, "write n=10 -rate throttle=100/s")
		assert.Equal(t, diag.ArityMismatch, d.Kind)
	})

	t.Run("zero threads", func(t *testing.T) {
		d := parseErr(t, "write n=10 -rate threads=0")
		assert.Equal(t, diag.RangeViolation, d.Kind)
	})
}

func TestPopulationGroup(t *testing.T) {
	t.Run("read lookback", func(t *testing.T) {
		cfg := parseLine(t, "write n=10 -pop seq=1..100 read-lookback=UNIFORM(1..10)")
		require.NotNil(t, cfg.Population.ReadLookback)
		assert.Equal(t, "UNIFORM(1..10)", cfg.Population.ReadLookback.String())
	})

	t.Run("read lookback requires seq", func(t *testing.T) {
		d := parseErr(t, "write n=10 -pop read-lookback=UNIFORM(1..10)")
		assert.Equal(t, diag.ArityMismatch, d.Kind)
	})

	t.Run("no-wrap incompatible with dist", func(t *testing.T) {
		d := parseErr(t, "write n=10 -pop dist=UNIFORM(1..100) no-wrap")
		assert.Equal(t, diag.DuplicateKey, d.Kind)
	})

	t.Run("short sequence with no-wrap", func(t *testing.T) {
		d := parseErr(t, "write n=1000 -pop seq=1..100 no-wrap")
		assert.Equal(t, diag.RangeViolation, d.Kind)
	})
}

func TestColumnGroup(t *testing.T) {
	t.Run("count", func(t *testing.T) {
		cfg := parseLine(t, "write n=10 -col n=3")
		assert.Equal(t, []string{"C0", "C1", "C2"}, cfg.Column.Names)
	})

	t.Run("names", func(t *testing.T) {
		cfg := parseLine(t, "write n=10 -col names=id,payload size=FIXED(128)")
		assert.Equal(t, []string{"id", "payload"}, cfg.Column.Names)
		assert.Equal(t, "FIXED(128)", cfg.Column.Size.String())
	})

	t.Run("names conflict with count", func(t *testing.T) {
		d := parseErr(t, "write n=10 -col n=3 names=a,b")
		assert.Equal(t, diag.DuplicateKey, d.Kind)
	})

	t.Run("zero columns", func(t *testing.T) {
		d := parseErr(t, "write n=10 -col n=0")
		assert.Equal(t, diag.RangeViolation, d.Kind)
	})
}

func TestSchemaGroup(t *testing.T) {
	cfg := parseLine(t,
		"write n=10 -schema keyspace=ks1 compaction(strategy=LeveledCompactionStrategy) compression=LZ4Compressor")
	assert.Equal(t, "ks1", cfg.Schema.Keyspace)
	assert.Equal(t, "LeveledCompactionStrategy", cfg.Schema.CompactionStrategy)
	assert.Equal(t, "LZ4Compressor", cfg.Schema.Compression)

	t.Run("alias key", func(t *testing.T) {
		cfg := parseLine(t, "write n=10 -schema replication(replication_factor=3)")
		assert.Equal(t, int64(3), cfg.Schema.ReplicationFactor)
	})

	t.Run("zero factor", func(t *testing.T) {
		d := parseErr(t, "write n=10 -schema replication(factor=0)")
		assert.Equal(t, diag.RangeViolation, d.Kind)
	})

	t.Run("unknown compaction key", func(t *testing.T) {
		d := parseErr(t, "write n=10 -schema compaction(class=Leveled)")
		assert.Equal(t, diag.UnknownIdentifier, d.Kind)
	})
}

func TestNodeGroup(t *testing.T) {
	cfg := parseLine(t, "write n=10 -node db1:9042,db2 datacenter=dc1 whitelist")
	assert.Equal(t, []string{"db1:9042", "db2"}, cfg.Node.Hosts)
	assert.Equal(t, "dc1", cfg.Node.Datacenter)
	assert.True(t, cfg.Node.Whitelist)

	t.Run("file", func(t *testing.T) {
		cfg := parseLine(t, "write n=10 -node file=./nodes.txt")
		assert.Equal(t, "./nodes.txt", cfg.Node.File)
		assert.Equal(t, []string{"localhost"}, cfg.Node.Hosts)
	})

	t.Run("trailing comma", func(t *testing.T) {
		d := parseErr(t, "write n=10 -node db1, -rate threads=4")
		assert.Equal(t, diag.SyntaxError, d.Kind)
	})
}

func TestModeGroup(t *testing.T) {
	cfg := parseLine(t, "write n=10 -mode cql3 native compression=snappy connectionsPerHost=8")
	assert.Equal(t, "snappy", cfg.Mode.Compression)
	assert.Equal(t, int64(8), cfg.Mode.ConnectionsPerHost)
	assert.Zero(t, cfg.Mode.ConnectionsPerShard)

	t.Run("per host conflicts with per shard", func(t *testing.T) {
		d := parseErr(t, "write n=10 -mode connectionsPerHost=8 connectionsPerShard=2")
		assert.Equal(t, diag.DuplicateKey, d.Kind)
	})

	t.Run("key casing is exact", func(t *testing.T) {
		d := parseErr(t, "write n=10 -mode connectionsperhost=8")
		assert.Equal(t, diag.UnknownIdentifier, d.Kind)
	})
}

func TestErrorsGroup(t *testing.T) {
	cfg := parseLine(t, "write n=10 -errors ignore retries=3 skip-read-validation")
	assert.True(t, cfg.Errors.Ignore)
	assert.Equal(t, int64(3), cfg.Errors.Retries)
	assert.True(t, cfg.Errors.SkipReadValidation)
}

func TestLogGroup(t *testing.T) {
	cfg := parseLine(t, "write n=10 -log interval=250ms hdrfile=latency.hdr")
	assert.Equal(t, 250*time.Millisecond, cfg.Log.Interval)
	assert.Equal(t, "latency.hdr", cfg.Log.HdrFile)

	t.Run("bare interval is seconds", func(t *testing.T) {
		cfg := parseLine(t, "write n=10 -log interval=5")
		assert.Equal(t, 5*time.Second, cfg.Log.Interval)
	})
}
