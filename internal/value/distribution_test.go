package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scylladb/cql-stress/internal/diag"
	"github.com/scylladb/cql-stress/internal/vocab"
)

func TestParseRange(t *testing.T) {
	r, err := ParseRange(cursorFor(t, "1..10m"), "seq")
	require.NoError(t, err)
	assert.Equal(t, Range{Min: 1, Max: 10_000_000}, r)

	t.Run("min greater than max", func(t *testing.T) {
		c := cursorFor(t, "10..1")
		_, err := ParseRange(c, "seq")
		requireKind(t, err, diag.RangeViolation)
		assert.Equal(t, 0, c.Mark())
	})

	t.Run("bare scalar is not a range", func(t *testing.T) {
		c := cursorFor(t, "50")
		_, err := ParseRange(c, "seq")
		requireKind(t, err, diag.TypeMismatch)
		assert.Equal(t, 0, c.Mark())
	})
}

func TestParseDistribution(t *testing.T) {
	voc := vocab.Default()

	testCases := []struct {
		name  string
		input string
		want  string // canonical rendering
	}{
		{"fixed", "FIXED(1)", "FIXED(1)"},
		{"fixed lowercase", "fixed(42)", "FIXED(42)"},
		{"uniform", "UNIFORM(1..10)", "UNIFORM(1..10)"},
		{"uniform suffixed", "uniform(1..10m)", "UNIFORM(1..10000000)"},
		{"seq", "SEQ(1..1000000)", "SEQ(1..1000000)"},
		{"gaussian plain", "GAUSSIAN(1..10)", "GAUSSIAN(1..10)"},
		{"gaussian stdvrng", "GAUSSIAN(1..10,5)", "GAUSSIAN(1..10,5)"},
		{"gaussian mean stdev", "GAUSSIAN(1..10,5,1.5)", "GAUSSIAN(1..10,5,1.5)"},
		{"normal alias", "NORMAL(1..10)", "GAUSSIAN(1..10)"},
		{"gauss alias", "gauss(1..10)", "GAUSSIAN(1..10)"},
		{"exp", "EXP(1..100)", "EXP(1..100)"},
		{"extreme", "EXTREME(1..100,2)", "EXTREME(1..100,2)"},
		{"inverted", "~exp(1..100)", "~EXP(1..100)"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := cursorFor(t, tc.input)
			d, err := ParseDistribution(c, voc, "dist")
			require.NoError(t, err)
			assert.Equal(t, tc.want, d.String())
			assert.True(t, c.AtEOF())
		})
	}
}

func TestParseDistributionErrors(t *testing.T) {
	voc := vocab.Default()

	testCases := []struct {
		name  string
		input string
		kind  diag.Kind
	}{
		{"unknown name", "ZIPF(1..10)", diag.UnknownIdentifier},
		{"range where scalar expected", "FIXED(1..10)", diag.ArityMismatch},
		{"scalar where range expected", "UNIFORM(50)", diag.ArityMismatch},
		{"too many scalars", "FIXED(1,2)", diag.ArityMismatch},
		{"missing scalar", "EXTREME(1..100)", diag.ArityMismatch},
		{"too many gaussian args", "GAUSSIAN(1..10,1,2,3)", diag.ArityMismatch},
		{"missing parens", "FIXED", diag.SyntaxError},
		{"empty uniform", "UNIFORM()", diag.ArityMismatch},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := cursorFor(t, tc.input)
			_, err := ParseDistribution(c, voc, "dist")
			requireKind(t, err, tc.kind)
			assert.Equal(t, 0, c.Mark(), "cursor must not consume on failure")
		})
	}
}

func TestDistributionStringRoundTrip(t *testing.T) {
	voc := vocab.Default()
	for _, input := range []string{"FIXED(1)", "UNIFORM(1..10)", "~EXTREME(1..100,2)", "GAUSSIAN(1..10,5,1.5)"} {
		d, err := ParseDistribution(cursorFor(t, input), voc, "dist")
		require.NoError(t, err)
		d2, err := ParseDistribution(cursorFor(t, d.String()), voc, "dist")
		require.NoError(t, err)
		assert.Equal(t, d, d2)
	}
}
