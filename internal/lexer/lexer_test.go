package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scylladb/cql-stress/internal/diag"
)

// kinds strips the stream down to token kinds, EOF excluded.
func kinds(t *testing.T, input string) []Kind {
	t.Helper()
	toks, err := Scan(input)
	require.NoError(t, err)
	var out []Kind
	for _, tok := range toks {
		if tok.Kind == EOF {
			continue
		}
		out = append(out, tok.Kind)
	}
	return out
}

func texts(t *testing.T, input string) []string {
	t.Helper()
	toks, err := Scan(input)
	require.NoError(t, err)
	var out []string
	for _, tok := range toks {
		if tok.Kind == EOF {
			continue
		}
		out = append(out, tok.Text)
	}
	return out
}

func TestScanBasicStream(t *testing.T) {
	toks, err := Scan("write n=1000000 cl=QUORUM")
	require.NoError(t, err)
	require.Len(t, toks, 8) // incl. EOF

	assert.Equal(t, Ident, toks[0].Kind)
	assert.Equal(t, "write", toks[0].Text)
	assert.Equal(t, Ident, toks[1].Kind)
	assert.True(t, toks[2].IsOp(OpAssign))
	assert.Equal(t, Number, toks[3].Kind)
	assert.Equal(t, "1000000", toks[3].Mantissa)
	assert.Equal(t, "", toks[3].Suffix)
	assert.Equal(t, "QUORUM", toks[6].Text)
	assert.Equal(t, EOF, toks[7].Kind)
}

func TestScanArgsEquivalentToJoined(t *testing.T) {
	a, err := ScanArgs([]string{"-schema", "replication(factor=3)"})
	require.NoError(t, err)
	b, err := Scan("-schema replication ( factor = 3 )")
	require.NoError(t, err)

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Kind, b[i].Kind)
		assert.Equal(t, a[i].Text, b[i].Text)
	}
}

func TestScanNumberSuffixes(t *testing.T) {
	testCases := []struct {
		input    string
		mantissa string
		suffix   string
		isFloat  bool
	}{
		{"10k", "10", "k", false},
		{"10M", "10", "m", false},
		{"1b", "1", "b", false},
		{"90s", "90", "s", false},
		{"5m", "5", "m", false},
		{"2h", "2", "h", false},
		{"500ms", "500", "ms", false},
		{"34%", "34", "%", false},
		{"10000/s", "10000", "/s", false},
		{"0.02", "0.02", "", true},
		{"-1", "-1", "", false},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			toks, err := Scan(tc.input)
			require.NoError(t, err)
			require.Equal(t, Number, toks[0].Kind)
			assert.Equal(t, tc.mantissa, toks[0].Mantissa)
			assert.Equal(t, tc.suffix, toks[0].Suffix)
			assert.Equal(t, tc.isFloat, toks[0].IsFloat)
		})
	}
}

func TestScanStrayTrailingCharacters(t *testing.T) {
	_, err := Scan("n=10000p")
	require.Error(t, err)
	var d *diag.Error
	require.ErrorAs(t, err, &d)
	assert.Equal(t, diag.SyntaxError, d.Kind)
	assert.Contains(t, d.Msg, "stray trailing characters")
}

func TestScanHostsAndPaths(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []string
	}{
		{"dotted quad", "127.0.0.1", []string{"127.0.0.1"}},
		{"host list", "127.0.0.1,127.0.0.2", []string{"127.0.0.1", ",", "127.0.0.2"}},
		{"name starting with digit", "2nodes.example.com", []string{"2nodes.example.com"}},
		{"relative path", "./nodes.txt", []string{"./nodes.txt"}},
		{"parent-relative path", "../nodes.txt", []string{"../nodes.txt"}},
		{"nested parent-relative path", "../profiles/p.yaml", []string{"../profiles/p.yaml"}},
		{"absolute path", "/etc/hosts", []string{"/etc/hosts"}},
		{"host with port", "db1:9042", []string{"db1", ":", "9042"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, texts(t, tc.input))
		})
	}
}

func TestScanOperators(t *testing.T) {
	toks, err := Scan("err<0.02 n>30 n<200 threads>=4 threads<=1000")
	require.NoError(t, err)
	var ops []string
	for _, tok := range toks {
		if tok.Kind == Op {
			ops = append(ops, tok.Text)
		}
	}
	assert.Equal(t, []string{"<", ">", "<", ">=", "<="}, ops)
}

func TestScanRange(t *testing.T) {
	toks, err := Scan("1..10m")
	require.NoError(t, err)
	require.Len(t, toks, 4)
	assert.Equal(t, Number, toks[0].Kind)
	assert.True(t, toks[1].IsOp(OpRange))
	assert.Equal(t, "10m", toks[2].Text)
}

func TestScanErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"doubled assign", "factor==123"},
		{"unmatched open", "FIXED(1"},
		{"unmatched close", "FIXED 1)"},
		{"malformed float", "seq=1."},
		{"stray dash", "- 5"},
		{"unterminated quote", "'replication(factor=3"},
		{"empty quote", "''"},
		{"stray dot", ". x"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Scan(tc.input)
			require.Error(t, err)
			var d *diag.Error
			require.ErrorAs(t, err, &d)
			assert.Equal(t, diag.SyntaxError, d.Kind)
		})
	}
}

func TestScanQuotes(t *testing.T) {
	t.Run("bare word becomes Str", func(t *testing.T) {
		toks, err := Scan("keyspace='ks1'")
		require.NoError(t, err)
		require.Equal(t, Str, toks[2].Kind)
		assert.Equal(t, "ks1", toks[2].Text)
	})

	t.Run("structured quote is transparent", func(t *testing.T) {
		a := texts(t, "'replication(factor=3)'")
		b := texts(t, "replication(factor=3)")
		assert.Equal(t, b, a)
	})
}

func TestScanPunctuation(t *testing.T) {
	assert.Equal(t,
		[]Kind{Ident, Punct, Ident, Op, Number, Punct, Ident, Op, Number, Punct},
		kinds(t, "ratio(read=2,write=1)"))
}

func TestScanInversionMarker(t *testing.T) {
	toks, err := Scan("~EXTREME(1..100,2)")
	require.NoError(t, err)
	assert.True(t, toks[0].IsPunct('~'))
	assert.Equal(t, "EXTREME", toks[1].Text)
}
