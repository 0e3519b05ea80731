// Package batch maps a per-file operation over a set of discovered files
// using a bounded pool of workers.
//
// Every input path produces exactly one outcome, written into a
// preallocated slot keyed by the input's index, so no locking is needed on
// the results and completion order cannot drop, duplicate, or reorder the
// outcome set. A failure inside one file's operation (including a panic) is
// captured on that file's outcome and never disturbs the others.
package batch

import (
	"context"
	"fmt"
	"sync"
)

// DefaultWorkers is the pool size used when the caller supplies none.
const DefaultWorkers = 4

// Outcome is the result of applying an operation to one file.
type Outcome struct {
	// Path is the input file this outcome belongs to.
	Path string
	// Findings holds validation findings or operation errors, in order.
	Findings []string
	// Changed reports whether a migration rewrote the file.
	Changed bool
	// Failed marks outcomes whose operation errored rather than merely
	// finding the document invalid.
	Failed bool
}

// Operation is the per-file unit of work. Implementations must confine all
// failures to the returned Outcome; the runner additionally converts panics
// into failed outcomes as a last line of defense.
type Operation func(path string) Outcome

// Run executes op over every path with a fixed-size worker pool and returns
// one outcome per input, in input order.
//
// There is no mid-operation cancellation: a canceled context stops new files
// from being dispatched while in-flight workers drain, and any files never
// dispatched report a synthetic failure so the one-outcome-per-input
// invariant holds.
func Run(ctx context.Context, paths []string, workers int, op Operation) []Outcome {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	results := make([]Outcome, len(paths))
	if len(paths) == 0 {
		return results
	}

	work := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				results[i] = runOne(paths[i], op)
			}
		}()
	}

	dispatched := 0
dispatch:
	for i := range paths {
		select {
		case work <- i:
			dispatched++
		case <-ctx.Done():
			break dispatch
		}
	}
	close(work)
	wg.Wait()

	if dispatched < len(paths) {
		// Mark everything the cancellation cut off. Dispatch is in input
		// order, so the undispatched tail starts right after the last
		// index handed out.
		for i := dispatched; i < len(paths); i++ {
			results[i] = Outcome{
				Path:     paths[i],
				Findings: []string{"canceled before processing"},
				Failed:   true,
			}
		}
	}

	return results
}

// runOne applies the operation to a single path, converting panics into a
// failed outcome attributed to that path.
func runOne(path string, op Operation) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = Outcome{
				Path:     path,
				Findings: []string{fmt.Sprintf("Unexpected error: %v", r)},
				Failed:   true,
			}
		}
	}()
	return op(path)
}
