// Package report aggregates batch outcomes into a summary for rendering.
package report

import (
	"time"

	"github.com/vcon-dev/vconlint/internal/batch"
)

// Mode selects how outcomes are partitioned.
type Mode int

const (
	// ModeValidate partitions outcomes into valid and invalid files.
	ModeValidate Mode = iota
	// ModeMigrate partitions outcomes into changed, unchanged, and errored files.
	ModeMigrate
)

// Summary is the stable, serializable aggregate over one run. All counts are
// zero for a run that found no candidates; no rate field can divide by zero
// because rates are left to the renderer.
type Summary struct {
	Mode      Mode            `json:"-"`
	Total     int             `json:"total"`
	Valid     int             `json:"valid"`
	Invalid   int             `json:"invalid"`
	Changed   int             `json:"changed"`
	Unchanged int             `json:"unchanged"`
	Errored   int             `json:"errored"`
	Elapsed   time.Duration   `json:"elapsed"`
	Outcomes  []batch.Outcome `json:"outcomes"`
}

// Summarize partitions the outcomes and computes totals. The elapsed
// duration is supplied by the caller, which owns the run's wall clock.
func Summarize(mode Mode, outcomes []batch.Outcome, elapsed time.Duration) Summary {
	s := Summary{
		Mode:     mode,
		Total:    len(outcomes),
		Elapsed:  elapsed,
		Outcomes: outcomes,
	}

	for _, o := range outcomes {
		switch mode {
		case ModeValidate:
			if len(o.Findings) > 0 {
				s.Invalid++
			} else {
				s.Valid++
			}
		case ModeMigrate:
			switch {
			case o.Failed:
				s.Errored++
			case o.Changed:
				s.Changed++
			default:
				s.Unchanged++
			}
		}
	}

	return s
}
