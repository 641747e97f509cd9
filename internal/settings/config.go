package settings

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/scylladb/cql-stress/internal/value"
)

// Configuration is the fully validated result of a parse. It is never
// mutated after Parse returns; callers may share it freely across
// goroutines.
type Configuration struct {
	Command Command

	// Exactly one of Count, Duration and Uncertainty is set.
	Count       *int64
	Duration    *time.Duration
	Uncertainty *Uncertainty

	NoWarmup               bool
	Truncate               string
	ConsistencyLevel       string
	SerialConsistencyLevel string
	Keysize                int64

	// At most one of the command extras is set, matching Command.
	Counter *CounterOptions
	Mixed   *MixedOptions
	User    *UserOptions

	Rate       RateOptions
	Population PopulationOptions
	Column     ColumnOptions
	Schema     SchemaOptions
	Node       NodeOptions
	Mode       ModeOptions
	Errors     ErrorsOptions
	Log        LogOptions
	Transport  TransportOptions
}

// CommandLine reserializes the configuration into an argument vector that
// parses back into an equal Configuration. Defaults are spelled out, so the
// result is canonical rather than minimal.
func (c *Configuration) CommandLine() []string {
	args := []string{string(c.Command)}

	switch {
	case c.Count != nil:
		args = append(args, "n="+value.FormatCount(*c.Count))
	case c.Duration != nil:
		args = append(args, "duration="+value.FormatDuration(*c.Duration))
	default:
		args = append(args,
			fmt.Sprintf("err<%v", c.Uncertainty.Target),
			"n>"+value.FormatCount(c.Uncertainty.MinMeasurements),
			"n<"+value.FormatCount(c.Uncertainty.MaxMeasurements))
	}
	if c.NoWarmup {
		args = append(args, "no-warmup")
	}
	args = append(args,
		"truncate="+c.Truncate,
		"cl="+c.ConsistencyLevel,
		"serial-cl="+c.SerialConsistencyLevel,
		"keysize="+value.FormatCount(c.Keysize))

	switch {
	case c.Counter != nil:
		args = append(args, "add="+c.Counter.Add.String())
	case c.Mixed != nil:
		args = append(args,
			"ratio"+c.Mixed.Ratio.String(),
			"clustering="+c.Mixed.Clustering.String())
	case c.User != nil:
		args = append(args,
			"profile="+c.User.Profile,
			"ops"+c.User.Ops.String(),
			"clustering="+c.User.Clustering.String())
	}

	args = append(args, "-rate")
	if c.Rate.AutoMode() {
		args = append(args,
			"threads>="+value.FormatCount(c.Rate.MinThreads),
			"threads<="+value.FormatCount(c.Rate.MaxThreads))
		if c.Rate.Auto {
			args = append(args, "auto")
		}
	} else {
		args = append(args, "threads="+value.FormatCount(c.Rate.Threads))
		if c.Rate.OpsPerSec > 0 {
			key := "throttle="
			if c.Rate.FixedCoordination {
				key = "fixed="
			}
			args = append(args, key+value.FormatCount(c.Rate.OpsPerSec)+"/s")
		}
	}

	args = append(args, "-pop")
	if c.Population.Seed.Name == "SEQ" && c.Population.Seed.Range != nil {
		args = append(args, "seq="+c.Population.Seed.Range.String())
		if c.Population.NoWrap {
			args = append(args, "no-wrap")
		}
		if c.Population.ReadLookback != nil {
			args = append(args, "read-lookback="+c.Population.ReadLookback.String())
		}
	} else {
		args = append(args, "dist="+c.Population.Seed.String())
	}

	args = append(args, "-col",
		"names="+strings.Join(c.Column.Names, ","),
		"size="+c.Column.Size.String())

	args = append(args, "-schema",
		"keyspace="+c.Schema.Keyspace,
		fmt.Sprintf("replication(strategy=%s,factor=%d)",
			c.Schema.ReplicationStrategy, c.Schema.ReplicationFactor))
	if c.Schema.CompactionStrategy != "" {
		args = append(args, fmt.Sprintf("compaction(strategy=%s)", c.Schema.CompactionStrategy))
	}
	if c.Schema.Compression != "" {
		args = append(args, "compression="+c.Schema.Compression)
	}

	args = append(args, "-node", strings.Join(c.Node.Hosts, ","))
	if c.Node.Datacenter != "" {
		args = append(args, "datacenter="+c.Node.Datacenter)
	}
	if c.Node.Whitelist {
		args = append(args, "whitelist")
	}
	if c.Node.File != "" {
		args = append(args, "file="+c.Node.File)
	}

	args = append(args, "-mode", "compression="+c.Mode.Compression)
	if c.Mode.Username != "" {
		args = append(args, "user="+c.Mode.Username, "password="+c.Mode.Password)
	}
	if c.Mode.ConnectionsPerHost > 0 {
		args = append(args, "connectionsPerHost="+value.FormatCount(c.Mode.ConnectionsPerHost))
	} else {
		args = append(args, "connectionsPerShard="+value.FormatCount(c.Mode.ConnectionsPerShard))
	}

	args = append(args, "-errors")
	if c.Errors.Ignore {
		args = append(args, "ignore")
	}
	args = append(args, "retries="+value.FormatCount(c.Errors.Retries))
	if c.Errors.SkipReadValidation {
		args = append(args, "skip-read-validation")
	}

	args = append(args, "-log", "interval="+formatInterval(c.Log.Interval))
	if c.Log.HdrFile != "" {
		args = append(args, "hdrfile="+c.Log.HdrFile)
	}

	var transport []string
	add := func(key, v string) {
		if v != "" {
			transport = append(transport, key+"="+v)
		}
	}
	add("factory", c.Transport.Factory)
	add("truststore", c.Transport.Truststore)
	add("truststore-password", c.Transport.TruststorePassword)
	add("keystore", c.Transport.Keystore)
	add("keystore-password", c.Transport.KeystorePassword)
	add("ssl-protocol", c.Transport.SSLProtocol)
	add("ssl-alg", c.Transport.SSLAlg)
	add("store-type", c.Transport.StoreType)
	add("ssl-ciphers", c.Transport.SSLCiphers)
	if c.Transport.HostnameVerification != nil {
		transport = append(transport,
			fmt.Sprintf("hostname-verification=%t", *c.Transport.HostnameVerification))
	}
	if len(transport) > 0 {
		args = append(args, "-transport")
		args = append(args, transport...)
	}

	return args
}

func formatInterval(d time.Duration) string {
	if d%time.Second == 0 {
		return fmt.Sprintf("%ds", d/time.Second)
	}
	return fmt.Sprintf("%dms", d/time.Millisecond)
}

// Print writes a human-readable echo of every setting, in the group order
// of the command line.
func (c *Configuration) Print(w io.Writer) {
	p := func(format string, args ...any) { fmt.Fprintf(w, format+"\n", args...) }

	p("Command: %s", c.Command)
	switch {
	case c.Count != nil:
		p("  Count: %s", value.FormatCount(*c.Count))
	case c.Duration != nil:
		p("  Duration: %s", value.FormatDuration(*c.Duration))
	default:
		p("  Uncertainty: err<%v n>%d n<%d",
			c.Uncertainty.Target, c.Uncertainty.MinMeasurements, c.Uncertainty.MaxMeasurements)
	}
	p("  No warmup: %t", c.NoWarmup)
	p("  Truncate: %s", c.Truncate)
	p("  Consistency level: %s", c.ConsistencyLevel)
	p("  Serial consistency level: %s", c.SerialConsistencyLevel)
	p("  Key size: %d", c.Keysize)
	switch {
	case c.Counter != nil:
		p("  Counter increment: %s", c.Counter.Add)
	case c.Mixed != nil:
		p("  Ratio: %s", c.Mixed.Ratio)
		p("  Clustering: %s", c.Mixed.Clustering)
	case c.User != nil:
		p("  Profile: %s", c.User.Profile)
		p("  Ops: %s", c.User.Ops)
		p("  Clustering: %s", c.User.Clustering)
	}

	p("Rate:")
	if c.Rate.AutoMode() {
		p("  Threads: %d..%d (auto=%t)", c.Rate.MinThreads, c.Rate.MaxThreads, c.Rate.Auto)
	} else {
		p("  Threads: %d", c.Rate.Threads)
		switch {
		case c.Rate.OpsPerSec > 0 && c.Rate.FixedCoordination:
			p("  Fixed rate: %d/s", c.Rate.OpsPerSec)
		case c.Rate.OpsPerSec > 0:
			p("  Throttle: %d/s", c.Rate.OpsPerSec)
		}
	}

	p("Population:")
	p("  Seed: %s", c.Population.Seed)
	if c.Population.ReadLookback != nil {
		p("  Read lookback: %s", c.Population.ReadLookback)
	}
	p("  No wrap: %t", c.Population.NoWrap)

	p("Columns:")
	p("  Names: %s", strings.Join(c.Column.Names, ","))
	p("  Size: %s", c.Column.Size)

	p("Schema:")
	p("  Keyspace: %s", c.Schema.Keyspace)
	p("  Replication: strategy=%s factor=%d", c.Schema.ReplicationStrategy, c.Schema.ReplicationFactor)
	if c.Schema.CompactionStrategy != "" {
		p("  Compaction: strategy=%s", c.Schema.CompactionStrategy)
	}
	if c.Schema.Compression != "" {
		p("  Compression: %s", c.Schema.Compression)
	}

	p("Nodes: %s", strings.Join(c.Node.Hosts, ","))
	if c.Node.Datacenter != "" {
		p("  Datacenter: %s", c.Node.Datacenter)
	}
	p("  Whitelist: %t", c.Node.Whitelist)
	if c.Node.File != "" {
		p("  File: %s", c.Node.File)
	}

	p("Mode:")
	p("  Compression: %s", c.Mode.Compression)
	if c.Mode.Username != "" {
		p("  Username: %s", c.Mode.Username)
	}
	if c.Mode.ConnectionsPerHost > 0 {
		p("  Connections per host: %d", c.Mode.ConnectionsPerHost)
	} else {
		p("  Connections per shard: %d", c.Mode.ConnectionsPerShard)
	}

	p("Errors:")
	p("  Ignore: %t", c.Errors.Ignore)
	p("  Retries: %d", c.Errors.Retries)
	p("  Skip read validation: %t", c.Errors.SkipReadValidation)

	p("Log:")
	p("  Interval: %s", c.Log.Interval)
	if c.Log.HdrFile != "" {
		p("  HDR file: %s", c.Log.HdrFile)
	}

	if c.Transport != (TransportOptions{}) {
		p("Transport:")
		if c.Transport.Truststore != "" {
			p("  Truststore: %s", c.Transport.Truststore)
		}
		if c.Transport.Keystore != "" {
			p("  Keystore: %s", c.Transport.Keystore)
		}
		if c.Transport.SSLProtocol != "" {
			p("  Protocol: %s", c.Transport.SSLProtocol)
		}
		if c.Transport.HostnameVerification != nil {
			p("  Hostname verification: %t", *c.Transport.HostnameVerification)
		}
	}
}
