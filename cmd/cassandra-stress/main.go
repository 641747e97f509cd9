package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/scylladb/cql-stress/internal/cli"
	"github.com/scylladb/cql-stress/internal/ctxlog"
)

// main is the entrypoint of the frontend. The whole argument vector belongs
// to the workload grammar, so logging is configured through the environment
// instead: CQL_STRESS_LOG_LEVEL (debug|info|warn|error) and
// CQL_STRESS_LOG_FORMAT (text|json).
func main() {
	logger := newLogger(
		os.Getenv("CQL_STRESS_LOG_LEVEL"),
		os.Getenv("CQL_STRESS_LOG_FORMAT"),
		os.Stderr,
	)
	slog.SetDefault(logger)

	ctx := ctxlog.WithLogger(context.Background(), logger)
	if err := run(ctx, os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main logic for easier testing and error handling.
func run(ctx context.Context, outW io.Writer, args []string) error {
	return cli.Run(ctx, outW, args)
}

// newLogger configures a slog.Logger without touching the global default,
// so tests can build isolated instances.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(levelStr) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.ToLower(formatStr) == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}
	return slog.New(handler)
}
