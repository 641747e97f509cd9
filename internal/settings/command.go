package settings

import (
	"strings"
	"time"

	"github.com/scylladb/cql-stress/internal/diag"
	"github.com/scylladb/cql-stress/internal/lexer"
	"github.com/scylladb/cql-stress/internal/value"
	"github.com/scylladb/cql-stress/internal/vocab"
)

// Command identifies the workload selected on the command line.
type Command string

const (
	CommandWrite        Command = "write"
	CommandRead         Command = "read"
	CommandCounterWrite Command = "counter_write"
	CommandCounterRead  Command = "counter_read"
	CommandMixed        Command = "mixed"
	CommandUser         Command = "user"
)

var workloadCommands = []Command{
	CommandWrite,
	CommandRead,
	CommandCounterWrite,
	CommandCounterRead,
	CommandMixed,
	CommandUser,
}

var commandDescriptions = map[Command]string{
	CommandWrite:        "Multiple concurrent writes against the cluster",
	CommandRead:         "Multiple concurrent reads; the cluster must first be populated by a write test",
	CommandCounterWrite: "Multiple concurrent updates of counters",
	CommandCounterRead:  "Multiple concurrent reads of counters; the counters must first be populated by a counter_write test",
	CommandMixed:        "Interleaving of read and write operations with configurable ratio and distribution",
	CommandUser:         "Interleaving of user-provided queries with configurable ratio and distribution",
}

func lookupCommand(word string) (Command, bool) {
	for _, cmd := range workloadCommands {
		if strings.EqualFold(word, string(cmd)) {
			return cmd, true
		}
	}
	return "", false
}

// commonSchema builds the top-level parameter table shared by every
// workload command. The three usage alternatives are the uncertainty-bounded
// run, the fixed-count run and the fixed-duration run; extra lists the
// command-specific slots appended to each alternative.
func commonSchema(name string, voc *vocab.Vocabulary, extra []*keySpec) *schema {
	keys := []*keySpec{
		{key: "err", op: "<", kind: kindUnitInterval, def: "0.02",
			desc: "Run until the standard error of the mean is below this fraction"},
		{key: "n", op: ">", kind: kindCount, def: "30",
			desc: "Run at least this many iterations before accepting uncertainty convergence"},
		{key: "n", op: "<", kind: kindCount, def: "200",
			desc: "Run at most this many iterations before accepting uncertainty convergence"},
		{key: "n", op: "=", kind: kindCount,
			desc: "Number of operations to perform"},
		{key: "duration", op: "=", kind: kindDuration,
			desc: "Time to run for, with mandatory s, m or h unit"},
		{key: "no-warmup", kind: kindFlag,
			desc: "Do not warm up the process before running"},
		{key: "truncate", op: "=", kind: kindEnum, enum: voc.TruncateModes, def: "never",
			desc: "Truncate the table before or between iterations"},
		{key: "cl", op: "=", kind: kindEnum, enum: voc.ConsistencyLevels, def: "LOCAL_ONE",
			desc: "Consistency level to use"},
		{key: "serial-cl", op: "=", kind: kindEnum, enum: voc.SerialConsistencyLevels, def: "SERIAL",
			desc: "Serial consistency level to use"},
		{key: "keysize", op: "=", kind: kindCount, def: "10",
			desc: "Key size in bytes"},
	}
	keys = append(keys, extra...)

	shared := []string{"no-warmup", "truncate=", "cl=", "serial-cl=", "keysize="}
	for _, k := range extra {
		shared = append(shared, k.slot())
	}
	uncertainty := usage{slots: append([]string{"err<", "n>", "n<"}, shared...)}
	count := usage{slots: append([]string{"n="}, shared...), required: []string{"n="}}
	duration := usage{slots: append([]string{"duration="}, shared...), required: []string{"duration="}}

	return &schema{
		name:   name,
		desc:   commandDescriptions[Command(name)],
		keys:   keys,
		usages: []usage{uncertainty, count, duration},
	}
}

func commandSchema(cmd Command, voc *vocab.Vocabulary) *schema {
	switch cmd {
	case CommandCounterWrite, CommandCounterRead:
		return commonSchema(string(cmd), voc, []*keySpec{
			{key: "add", op: "=", kind: kindDist, def: "FIXED(1)",
				desc: "Distribution of the value added to the counter on each operation"},
		})
	case CommandMixed:
		return commonSchema(string(cmd), voc, []*keySpec{
			{key: "ratio", kind: kindRatio, member: voc.IsMixedOperation, def: "ratio(read=1,write=1)",
				desc: "Specify the ratios for operations to perform, e.g. ratio(read=2,write=1)"},
			{key: "clustering", op: "=", kind: kindDist, def: "GAUSSIAN(1..10)",
				desc: "Distribution clustering runs of operations of the same kind"},
		})
	case CommandUser:
		return commonSchema(string(cmd), voc, []*keySpec{
			{key: "profile", op: "=", kind: kindWord,
				desc: "Path to a YAML file defining the schema and queries"},
			{key: "ops", kind: kindRatio, member: nil,
				desc: "Specify the ratios for queries defined in the profile, e.g. ops(insert=2,select=1)"},
			{key: "clustering", op: "=", kind: kindDist, def: "GAUSSIAN(1..10)",
				desc: "Distribution clustering runs of operations of the same kind"},
		})
	default:
		return commonSchema(string(cmd), voc, nil)
	}
}

// Uncertainty configures an uncertainty-bounded run: iterate until the
// standard error of the mean drops below Target, with iteration bounds.
type Uncertainty struct {
	Target          float64
	MinMeasurements int64
	MaxMeasurements int64
}

// materializeCommon resolves the top-level usage alternative and fills the
// shared Configuration fields.
func materializeCommon(cfg *Configuration, s *schema, got values) error {
	u, err := s.resolveUsage(got)
	if err != nil {
		return err
	}

	switch {
	case containsString(u.slots, "n="):
		n := got.count("n=", 0)
		if n <= 0 {
			return diag.Errorf(diag.RangeViolation, "n",
				"operation count must be positive, got %d", n)
		}
		cfg.Count = &n
	case containsString(u.slots, "duration="):
		d := got["duration="].(time.Duration)
		if d <= 0 {
			return diag.Errorf(diag.RangeViolation, "duration",
				"duration must be positive, got %v", d)
		}
		cfg.Duration = &d
	default:
		unc := &Uncertainty{Target: 0.02, MinMeasurements: 30, MaxMeasurements: 200}
		if x, ok := got["err<"]; ok {
			unc.Target = x.(float64)
		}
		unc.MinMeasurements = got.count("n>", unc.MinMeasurements)
		unc.MaxMeasurements = got.count("n<", unc.MaxMeasurements)
		if unc.MinMeasurements <= 0 || unc.MaxMeasurements <= 0 {
			return diag.Errorf(diag.RangeViolation, "n",
				"measurement bounds must be positive")
		}
		if unc.MinMeasurements > unc.MaxMeasurements {
			return diag.Errorf(diag.RangeViolation, "n",
				"minimum measurements %d exceed maximum %d",
				unc.MinMeasurements, unc.MaxMeasurements)
		}
		cfg.Uncertainty = unc
	}

	cfg.NoWarmup = got.flag("no-warmup")
	cfg.Truncate = got.word("truncate=", "never")
	cfg.ConsistencyLevel = got.word("cl=", "LOCAL_ONE")
	cfg.SerialConsistencyLevel = got.word("serial-cl=", "SERIAL")
	cfg.Keysize = got.count("keysize=", 10)
	if cfg.Keysize <= 0 {
		return diag.Errorf(diag.RangeViolation, "keysize",
			"key size must be positive, got %d", cfg.Keysize)
	}
	return nil
}

// CounterOptions carries the counter_write / counter_read extras.
type CounterOptions struct {
	// Add is the distribution of the counter increment per operation.
	Add value.DistributionSpec
}

// MixedOptions carries the mixed command extras.
type MixedOptions struct {
	Ratio      value.RatioMap
	Clustering value.DistributionSpec
}

// UserOptions carries the user command extras.
type UserOptions struct {
	Profile    string
	Ops        value.RatioMap
	Clustering value.DistributionSpec
}

func defaultDist(voc *vocab.Vocabulary, name string, min, max int64) value.DistributionSpec {
	r := value.Range{Min: min, Max: max}
	return value.DistributionSpec{Name: name, Range: &r}
}

func materializeCommandExtras(cfg *Configuration, got values, voc *vocab.Vocabulary) error {
	switch cfg.Command {
	case CommandCounterWrite, CommandCounterRead:
		opts := &CounterOptions{Add: value.DistributionSpec{Name: "FIXED", Scalars: []float64{1}}}
		if x, ok := got["add="]; ok {
			opts.Add = x.(value.DistributionSpec)
		}
		cfg.Counter = opts
	case CommandMixed:
		opts := &MixedOptions{
			Ratio: value.RatioMap{Entries: []value.RatioEntry{
				{Op: "read", Weight: 1},
				{Op: "write", Weight: 1},
			}},
			Clustering: defaultDist(voc, "GAUSSIAN", 1, 10),
		}
		if x, ok := got["ratio"]; ok {
			opts.Ratio = x.(value.RatioMap)
		}
		if x, ok := got["clustering="]; ok {
			opts.Clustering = x.(value.DistributionSpec)
		}
		cfg.Mixed = opts
	case CommandUser:
		opts := &UserOptions{Clustering: defaultDist(voc, "GAUSSIAN", 1, 10)}
		if x, ok := got["profile="]; !ok {
			return diag.Errorf(diag.ArityMismatch, "user",
				"the user command requires profile=")
		} else {
			opts.Profile = x.(string)
		}
		if x, ok := got["ops"]; !ok {
			return diag.Errorf(diag.ArityMismatch, "user",
				"the user command requires ops(...)")
		} else {
			opts.Ops = x.(value.RatioMap)
		}
		if x, ok := got["clustering="]; ok {
			opts.Clustering = x.(value.DistributionSpec)
		}
		cfg.User = opts
	}
	return nil
}

// groupOrder fixes the parse and help order of the dash-prefixed groups.
var groupOrder = []string{
	"-rate", "-pop", "-col", "-schema", "-node", "-mode", "-errors", "-log", "-transport",
}

type groupDef struct {
	build       func(*vocab.Vocabulary) *schema
	materialize func(*Configuration, values, *vocab.Vocabulary) error
}

var groups = map[string]groupDef{
	"-rate":      {buildRateSchema, materializeRate},
	"-pop":       {buildPopulationSchema, materializePopulation},
	"-col":       {buildColumnSchema, materializeColumn},
	"-schema":    {buildSchemaSchema, materializeSchema},
	"-node":      {buildNodeSchema, materializeNode},
	"-mode":      {buildModeSchema, materializeMode},
	"-errors":    {buildErrorsSchema, materializeErrors},
	"-log":       {buildLogSchema, materializeLog},
	"-transport": {buildTransportSchema, materializeTransport},
}

// parseWorkload parses a workload command: top-level parameters first, then
// any number of dash-prefixed option groups, each at most once.
func parseWorkload(cmd Command, c *value.Cursor, voc *vocab.Vocabulary) (*Configuration, error) {
	cfg := &Configuration{Command: cmd}

	top := commandSchema(cmd, voc)
	topVals := values{}
	if err := top.parse(c, voc, topVals, nil, nil); err != nil {
		return nil, err
	}

	groupVals := map[string]values{}
	for {
		t := c.Peek()
		if t.Kind == lexer.EOF {
			break
		}
		if !isGroupToken(t) {
			return nil, diag.Errorf(diag.SyntaxError, t.Text,
				"expected an option group, got %s", t)
		}
		def, ok := groups[t.Text]
		if !ok {
			return nil, diag.Errorf(diag.UnknownIdentifier, t.Text,
				"unknown option group")
		}
		if _, dup := groupVals[t.Text]; dup {
			return nil, diag.Errorf(diag.DuplicateKey, t.Text,
				"option group %s supplied more than once", t.Text)
		}
		c.Next()
		vals := values{}
		if err := def.build(voc).parse(c, voc, vals, top, topVals); err != nil {
			return nil, err
		}
		groupVals[t.Text] = vals
	}

	if err := materializeCommon(cfg, top, topVals); err != nil {
		return nil, err
	}
	if err := materializeCommandExtras(cfg, topVals, voc); err != nil {
		return nil, err
	}
	for _, name := range groupOrder {
		vals := groupVals[name]
		if vals == nil {
			vals = values{}
		}
		if err := groups[name].materialize(cfg, vals, voc); err != nil {
			return nil, err
		}
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
