package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewWatcher(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer w.Stop()

	if w.IsRunning() {
		t.Error("newly created watcher should not be running")
	}
}

func TestWatcherStartStop(t *testing.T) {
	tmpDir := t.TempDir()

	w, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if err := w.Start(tmpDir); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if !w.IsRunning() {
		t.Error("watcher should be running after Start()")
	}

	if err := w.Stop(); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
	if w.IsRunning() {
		t.Error("watcher should not be running after Stop()")
	}
}

func TestWatcherStartAlreadyRunning(t *testing.T) {
	tmpDir := t.TempDir()

	w, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer w.Stop()

	if err := w.Start(tmpDir); err != nil {
		t.Fatalf("first Start() failed: %v", err)
	}
	if err := w.Start(tmpDir); err == nil {
		t.Error("expected error starting an already-running watcher")
	}
}

func TestWatcherEmitsJSONEvents(t *testing.T) {
	tmpDir := t.TempDir()

	w, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer w.Stop()

	if err := w.Start(tmpDir); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	jsonPath := filepath.Join(tmpDir, "new.json")
	if err := os.WriteFile(jsonPath, []byte(`{"vcon": "0.0.1"}`), 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	// Non-json files never produce events.
	if err := os.WriteFile(filepath.Join(tmpDir, "note.txt"), []byte("x"), 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	select {
	case event := <-w.Events():
		if event.Path != jsonPath {
			t.Errorf("event path = %s, want %s", event.Path, jsonPath)
		}
		if event.Op != OpCreate && event.Op != OpModify {
			t.Errorf("unexpected op %v", event.Op)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for file event")
	}

	// Drain: the txt file must not show up.
	select {
	case event := <-w.Events():
		if filepath.Ext(event.Path) == ".txt" {
			t.Errorf("txt file leaked through the filter: %s", event.Path)
		}
	case <-time.After(200 * time.Millisecond):
	}
}

func TestEventOpString(t *testing.T) {
	tests := []struct {
		op   EventOp
		want string
	}{
		{OpCreate, "create"},
		{OpModify, "modify"},
		{OpDelete, "delete"},
		{EventOp(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("EventOp(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}
