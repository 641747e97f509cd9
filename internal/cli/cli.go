// Package cli wires the command grammar to the process: it parses the
// argument vector, prints help and settings echoes, and translates
// diagnostics into exit codes.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/scylladb/cql-stress/internal/ctxlog"
	"github.com/scylladb/cql-stress/internal/diag"
	"github.com/scylladb/cql-stress/internal/settings"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Run parses args and writes the outcome to output: help or version text
// for the informational commands, a full settings echo for workload
// commands. Grammar and validation failures come back as an ExitError with
// code 2, the usage-error convention.
func Run(ctx context.Context, output io.Writer, args []string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("parsing command line", "argc", len(args))

	res, err := settings.Parse(args)
	if err != nil {
		var d *diag.Error
		if errors.As(err, &d) {
			logger.Debug("parse failed", "kind", d.Kind.String(), "where", d.Where)
			return &ExitError{Code: 2, Message: d.Error()}
		}
		return err
	}

	if res.Config == nil {
		fmt.Fprint(output, res.Output)
		return nil
	}

	logger.Debug("configuration accepted", "command", res.Config.Command)
	res.Config.Print(output)
	return nil
}
