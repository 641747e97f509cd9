package settings

import (
	"github.com/scylladb/cql-stress/internal/diag"
	"github.com/scylladb/cql-stress/internal/vocab"
)

// ErrorsOptions configures how operation failures are handled.
type ErrorsOptions struct {
	// Ignore keeps the run going after an operation exhausts its retries.
	Ignore bool
	// Retries is the number of attempts after the first failure.
	Retries int64
	// SkipReadValidation disables comparing read results against the
	// generated expectation.
	SkipReadValidation bool
}

func buildErrorsSchema(voc *vocab.Vocabulary) *schema {
	return &schema{
		name: "-errors",
		desc: "Operation failure handling",
		keys: []*keySpec{
			{key: "ignore", kind: kindFlag,
				desc: "Continue the run after an operation exhausts its retries"},
			{key: "retries", op: "=", kind: kindCount, def: "9",
				desc: "Number of retries per failed operation"},
			{key: "skip-read-validation", kind: kindFlag,
				desc: "Do not validate read results against the expected data"},
		},
	}
}

func materializeErrors(cfg *Configuration, got values, voc *vocab.Vocabulary) error {
	opts := ErrorsOptions{
		Ignore:             got.flag("ignore"),
		Retries:            got.count("retries=", 9),
		SkipReadValidation: got.flag("skip-read-validation"),
	}
	if opts.Retries < 0 {
		return diag.Errorf(diag.RangeViolation, "retries",
			"retry count cannot be negative, got %d", opts.Retries)
	}
	cfg.Errors = opts
	return nil
}
