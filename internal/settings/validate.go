package settings

import (
	"github.com/scylladb/cql-stress/internal/diag"
)

// validate runs the cross-group checks that no single materializer can
// decide on its own. Everything here sees a structurally complete
// Configuration with defaults already applied.
func validate(cfg *Configuration) error {
	if cfg.Transport.TruststorePassword != "" && cfg.Transport.Truststore == "" {
		return diag.Errorf(diag.ArityMismatch, "-transport",
			"truststore-password requires truststore")
	}
	if cfg.Transport.KeystorePassword != "" && cfg.Transport.Keystore == "" {
		return diag.Errorf(diag.ArityMismatch, "-transport",
			"keystore-password requires keystore")
	}

	// A non-wrapping sequence shorter than the operation count would end
	// the run early, which is never what the caller meant.
	if cfg.Count != nil && cfg.Population.NoWrap && cfg.Population.Seed.Name == "SEQ" {
		if r := cfg.Population.Seed.Range; r != nil {
			if size := r.Max - r.Min + 1; size < *cfg.Count {
				return diag.Errorf(diag.RangeViolation, "-pop",
					"sequence %s yields %d seeds but n=%d operations were requested with no-wrap",
					r, size, *cfg.Count)
			}
		}
	}

	if cfg.Command == CommandCounterRead || cfg.Command == CommandCounterWrite {
		if cfg.Counter.Add.Name == "FIXED" && len(cfg.Counter.Add.Scalars) == 1 && cfg.Counter.Add.Scalars[0] == 0 {
			return diag.Errorf(diag.RangeViolation, "add",
				"counter increment cannot be fixed at zero")
		}
	}
	return nil
}
