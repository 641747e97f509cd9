package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWorkloadEcho(t *testing.T) {
	var sb strings.Builder
	err := Run(context.Background(), &sb, []string{"write", "n=1000", "cl=QUORUM"})
	require.NoError(t, err)

	out := sb.String()
	assert.Contains(t, out, "Command: write")
	assert.Contains(t, out, "Consistency level: QUORUM")
}

func TestRunHelp(t *testing.T) {
	var sb strings.Builder
	err := Run(context.Background(), &sb, []string{"help"})
	require.NoError(t, err)
	assert.Contains(t, sb.String(), "Usage: cql-stress")
}

func TestRunVersion(t *testing.T) {
	var sb strings.Builder
	err := Run(context.Background(), &sb, []string{"version"})
	require.NoError(t, err)
	assert.Contains(t, sb.String(), "cql-stress")
}

func TestRunDiagnosticExitCode(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{"stray suffix", []string{"write", "n=10000p"}},
		{"unknown command", []string{"wrte"}},
		{"duplicate key", []string{"write", "n=10", "cl=ONE", "cl=ONE"}},
		{"no arguments", nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var sb strings.Builder
			err := Run(context.Background(), &sb, tc.args)
			require.Error(t, err)

			exitErr, ok := err.(*ExitError)
			require.True(t, ok)
			assert.Equal(t, 2, exitErr.Code)
			assert.NotEmpty(t, exitErr.Message)
			assert.Empty(t, sb.String(), "nothing may be printed on failure")
		})
	}
}
