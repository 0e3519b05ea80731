package watch

import (
	"context"
	"log"
	"os"

	"github.com/vcon-dev/vconlint/internal/rules"
	"github.com/vcon-dev/vconlint/internal/scan"
	"github.com/vcon-dev/vconlint/internal/vcon"
)

// Runner drives a Watcher: whenever a candidate vCon file is created or
// modified it is re-validated and the findings are logged.
type Runner struct {
	logger *log.Logger
}

// NewRunner creates a Runner. If logger is nil, a default logger writing to
// stderr is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(os.Stderr, "[watch] ", log.LstdFlags)
	}
	return &Runner{logger: logger}
}

// Run watches root until the context is canceled, validating candidate
// files as they change. Deleted files are ignored; there is nothing left to
// validate.
func (r *Runner) Run(ctx context.Context, root string) error {
	w, err := New()
	if err != nil {
		return err
	}

	if err := w.Start(root); err != nil {
		_ = w.watcher.Close()
		return err
	}

	r.logger.Printf("watching %s", root)

	for {
		select {
		case <-ctx.Done():
			return w.Stop()

		case event, ok := <-w.Events():
			if !ok {
				return nil
			}
			if event.Op == OpDelete {
				continue
			}
			r.check(event.Path)

		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			r.logger.Printf("watch error: %v", err)
		}
	}
}

// check classifies and validates a single changed file.
func (r *Runner) check(path string) {
	if !scan.IsCandidate(path) {
		return
	}

	doc, err := vcon.ReadFile(path)
	if err != nil {
		r.logger.Printf("%s: %v", path, err)
		return
	}

	findings := rules.Validate(doc)
	if len(findings) == 0 {
		r.logger.Printf("%s: valid", path)
		return
	}
	for _, f := range findings {
		r.logger.Printf("%s: %s", path, f)
	}
}
