package settings

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reserializeLines = []string{
	"write n=1000000 cl=QUORUM -rate threads=50 throttle=10000/s -node 127.0.0.1,127.0.0.2 -schema replication(strategy=NetworkTopologyStrategy,factor=3)",
	"read",
	"read duration=30m no-warmup truncate=once",
	"mixed ratio(read=2,write=1) duration=5m clustering=FIXED(5)",
	"counter_write n=100 add=UNIFORM(1..10)",
	"user profile=./profile.yaml ops(insert=2,simple1=1) n=100",
	"write n=10k -pop seq=1..10k no-wrap -col names=c1,c2,c3 size=GAUSSIAN(10..100)",
	"write n=10 -rate threads>=8 threads<=64 auto -mode compression=lz4 user=cassandra password=cassandra",
	"write n=10 -errors ignore retries=3 -log interval=500ms hdrfile=out.hdr",
	"write n=10 -transport truststore=/etc/ca.pem truststore-password=secret hostname-verification=false",
	"write err<0.1 n>40 n<100 serial-cl=LOCAL_SERIAL",
}

// Parsing the reserialized command line must yield the identical
// configuration.
func TestCommandLineRoundTrip(t *testing.T) {
	for _, line := range reserializeLines {
		t.Run(line, func(t *testing.T) {
			first := parseLine(t, line)

			args := first.CommandLine()
			res, err := Parse(args)
			require.NoError(t, err, "reserialized: %q", strings.Join(args, " "))
			require.NotNil(t, res.Config)
			assert.Equal(t, first, res.Config)
		})
	}
}

// A Configuration is immutable after Parse; concurrent readers and
// concurrent parses must not interfere.
func TestParseConcurrent(t *testing.T) {
	const workers = 16

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		line := reserializeLines[i%len(reserializeLines)]
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := Parse(strings.Fields(line))
			if err != nil || res.Config == nil {
				t.Errorf("parse %q: %v", line, err)
				return
			}
			args := res.Config.CommandLine()
			if _, err := Parse(args); err != nil {
				t.Errorf("reparse %q: %v", strings.Join(args, " "), err)
			}
		}()
	}
	wg.Wait()
}

func TestPrintEcho(t *testing.T) {
	cfg := parseLine(t, "write n=1000 cl=QUORUM -rate threads=8 -schema keyspace=ks1")

	var sb strings.Builder
	cfg.Print(&sb)
	out := sb.String()

	assert.Contains(t, out, "Command: write")
	assert.Contains(t, out, "Count: 1000")
	assert.Contains(t, out, "Consistency level: QUORUM")
	assert.Contains(t, out, "Threads: 8")
	assert.Contains(t, out, "Keyspace: ks1")
	assert.Contains(t, out, "Seed: SEQ(1..1000)")
}
