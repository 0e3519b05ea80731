package batch

import (
	"github.com/vcon-dev/vconlint/internal/migrate"
	"github.com/vcon-dev/vconlint/internal/rules"
	"github.com/vcon-dev/vconlint/internal/vcon"
)

// ValidateOp returns the per-file validate operation: parse the file and run
// the full rule set over it. A parse failure becomes a single synthetic
// finding so the file still lands in the report as invalid.
func ValidateOp() Operation {
	return func(path string) Outcome {
		doc, err := vcon.ReadFile(path)
		if err != nil {
			return Outcome{
				Path:     path,
				Findings: []string{err.Error()},
				Failed:   true,
			}
		}
		return Outcome{
			Path:     path,
			Findings: rules.Messages(rules.Validate(doc)),
		}
	}
}

// MigrateOp returns the per-file migrate operation: parse, normalize, and
// rewrite the file when anything changed. Parse and write failures are
// reported as findings on the outcome.
func MigrateOp(opts migrate.Options) Operation {
	return func(path string) Outcome {
		result := migrate.File(path, opts)
		return Outcome{
			Path:     path,
			Findings: result.Errors,
			Changed:  result.Changed,
			Failed:   len(result.Errors) > 0,
		}
	}
}
