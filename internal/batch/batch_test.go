package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunOneOutcomePerInput(t *testing.T) {
	paths := make([]string, 10)
	for i := range paths {
		paths[i] = fmt.Sprintf("file-%d.json", i)
	}

	op := func(path string) Outcome {
		// Stagger completion so outcomes finish out of input order.
		time.Sleep(time.Duration(len(path)%3) * time.Millisecond)
		return Outcome{Path: path}
	}

	outcomes := Run(context.Background(), paths, 4, op)

	if len(outcomes) != 10 {
		t.Fatalf("expected 10 outcomes, got %d", len(outcomes))
	}
	seen := make(map[string]bool)
	for i, o := range outcomes {
		if o.Path != paths[i] {
			t.Errorf("outcome %d has path %s, want %s", i, o.Path, paths[i])
		}
		if seen[o.Path] {
			t.Errorf("duplicate outcome for %s", o.Path)
		}
		seen[o.Path] = true
	}
}

func TestRunBoundsConcurrency(t *testing.T) {
	var active, peak int64

	op := func(path string) Outcome {
		n := atomic.AddInt64(&active, 1)
		for {
			p := atomic.LoadInt64(&peak)
			if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt64(&active, -1)
		return Outcome{Path: path}
	}

	paths := make([]string, 20)
	for i := range paths {
		paths[i] = fmt.Sprintf("f%d", i)
	}

	Run(context.Background(), paths, 3, op)

	if got := atomic.LoadInt64(&peak); got > 3 {
		t.Errorf("worker pool exceeded its bound: peak %d", got)
	}
}

func TestRunIsolatesFailures(t *testing.T) {
	paths := []string{"good-1", "boom", "good-2"}

	op := func(path string) Outcome {
		if path == "boom" {
			panic("worker exploded")
		}
		return Outcome{Path: path}
	}

	outcomes := Run(context.Background(), paths, 2, op)

	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}
	if !outcomes[1].Failed {
		t.Error("panicking file must be marked failed")
	}
	if len(outcomes[1].Findings) != 1 {
		t.Fatalf("expected one synthetic finding, got %v", outcomes[1].Findings)
	}
	if outcomes[1].Path != "boom" {
		t.Errorf("failure attributed to %s, want boom", outcomes[1].Path)
	}
	if outcomes[0].Failed || outcomes[2].Failed {
		t.Error("healthy files must not be affected by a neighbor's failure")
	}
}

func TestRunEmptyInput(t *testing.T) {
	outcomes := Run(context.Background(), nil, 4, func(path string) Outcome {
		t.Error("operation must not run with no input")
		return Outcome{}
	})
	if len(outcomes) != 0 {
		t.Errorf("expected no outcomes, got %d", len(outcomes))
	}
}

func TestRunDefaultWorkers(t *testing.T) {
	outcomes := Run(context.Background(), []string{"a", "b"}, 0, func(path string) Outcome {
		return Outcome{Path: path}
	})
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
}

func TestRunCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	paths := []string{"a", "b", "c"}
	outcomes := Run(ctx, paths, 1, func(path string) Outcome {
		// Keep the single worker busy so later dispatches observe the
		// canceled context.
		time.Sleep(50 * time.Millisecond)
		return Outcome{Path: path}
	})

	if len(outcomes) != 3 {
		t.Fatalf("every input still maps to an outcome, got %d", len(outcomes))
	}
	canceled := 0
	for i, o := range outcomes {
		if o.Path != paths[i] {
			t.Errorf("outcome %d has path %s, want %s", i, o.Path, paths[i])
		}
		if o.Failed {
			canceled++
		}
	}
	if canceled == 0 {
		t.Error("expected undispatched files to be marked as canceled")
	}
}

func TestValidateOp(t *testing.T) {
	tmpDir := t.TempDir()

	valid := filepath.Join(tmpDir, "valid.json")
	if err := os.WriteFile(valid, []byte(`{"vcon": "0.0.1", "uuid": "x", "created_at": "2024-09-05T21:22:52+00:00"}`), 0600); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	broken := filepath.Join(tmpDir, "broken.json")
	if err := os.WriteFile(broken, []byte(`{nope`), 0600); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	op := ValidateOp()

	if o := op(valid); len(o.Findings) != 0 || o.Failed {
		t.Errorf("valid file produced %v", o.Findings)
	}

	o := op(broken)
	if !o.Failed {
		t.Error("parse failure must mark the outcome failed")
	}
	if len(o.Findings) != 1 {
		t.Errorf("expected one synthetic finding, got %v", o.Findings)
	}

	if o := op(filepath.Join(tmpDir, "missing.json")); !o.Failed {
		t.Error("missing file must mark the outcome failed")
	}
}
