package migrate

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/vcon-dev/vconlint/internal/vcon"
)

func TestApplyTimestampFix(t *testing.T) {
	doc := vcon.New(map[string]any{
		"vcon":       "0.0.1",
		"created_at": "2024-09-05T21:22:52.749585+00+00:00",
		"updated_at": "2024-09-05T21:22:52.749585+00+00:00",
	})

	if !Apply(doc) {
		t.Fatal("expected document to change")
	}

	obj := doc.Object()
	want := "2024-09-05T21:22:52.749585+00:00"
	if obj["created_at"] != want {
		t.Errorf("created_at = %q, want %q", obj["created_at"], want)
	}
	if obj["updated_at"] != want {
		t.Errorf("updated_at = %q, want %q", obj["updated_at"], want)
	}
}

func TestApplyRemovesRetiredMarkers(t *testing.T) {
	doc := vcon.New(map[string]any{
		"vcon":     "0.0.1",
		"redacted": map[string]any{"uuid": "other"},
		"appended": map[string]any{},
		"group":    []any{},
	})

	if !Apply(doc) {
		t.Fatal("expected document to change")
	}

	for _, key := range []string{"redacted", "appended", "group"} {
		if doc.Has(key) {
			t.Errorf("expected %s to be removed", key)
		}
	}
	if !doc.Has("vcon") {
		t.Error("unrelated keys must survive")
	}
}

func TestApplyIdempotent(t *testing.T) {
	doc := vcon.New(map[string]any{
		"vcon":       "0.0.1",
		"created_at": "2024-09-05T21:22:52.749585+00+00:00",
		"redacted":   map[string]any{},
	})

	if !Apply(doc) {
		t.Fatal("first pass should change the document")
	}

	first := map[string]any{}
	for k, v := range doc.Object() {
		first[k] = v
	}

	if Apply(doc) {
		t.Error("second pass must report unchanged")
	}
	if !reflect.DeepEqual(first, doc.Object()) {
		t.Error("second pass must not modify the document")
	}
}

func TestApplyCleanDocumentUnchanged(t *testing.T) {
	doc := vcon.New(map[string]any{
		"vcon":       "0.0.1",
		"created_at": "2024-09-05T21:22:52.749585+00:00",
	})

	if Apply(doc) {
		t.Error("well-formed timestamps must not count as a change")
	}
}

func TestApplyNonObject(t *testing.T) {
	doc := vcon.New([]any{"not", "an", "object"})
	if Apply(doc) {
		t.Error("non-object documents are left alone")
	}
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func TestFileRewritesChanged(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeTestFile(t, tmpDir, "a.json",
		`{"vcon": "0.0.1", "created_at": "2024-09-05T21:22:52.749585+00+00:00", "group": []}`)

	result := File(path, Options{})
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if !result.Changed {
		t.Fatal("expected a change")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back: %v", err)
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		t.Fatalf("rewritten file is not valid JSON: %v", err)
	}
	if obj["created_at"] != "2024-09-05T21:22:52.749585+00:00" {
		t.Errorf("created_at not fixed: %v", obj["created_at"])
	}
	if _, ok := obj["group"]; ok {
		t.Error("group key not removed")
	}
	if !strings.Contains(string(data), "\n") {
		t.Error("expected human-readable indentation")
	}
}

func TestFileLeavesUnchangedAlone(t *testing.T) {
	tmpDir := t.TempDir()
	content := `{"vcon": "0.0.1", "created_at": "2024-09-05T21:22:52+00:00"}`
	path := writeTestFile(t, tmpDir, "clean.json", content)

	result := File(path, Options{})
	if result.Changed {
		t.Fatal("expected no change")
	}
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back: %v", err)
	}
	if string(data) != content {
		t.Error("unchanged file must not be rewritten")
	}
}

func TestFileDryRun(t *testing.T) {
	tmpDir := t.TempDir()
	content := `{"vcon": "0.0.1", "redacted": {}}`
	path := writeTestFile(t, tmpDir, "dry.json", content)

	result := File(path, Options{DryRun: true})
	if !result.Changed {
		t.Fatal("dry run still reports what would change")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back: %v", err)
	}
	if string(data) != content {
		t.Error("dry run must not write")
	}
}

func TestFileBackup(t *testing.T) {
	tmpDir := t.TempDir()
	content := `{"vcon": "0.0.1", "appended": {}}`
	path := writeTestFile(t, tmpDir, "b.json", content)

	result := File(path, Options{Backup: true})
	if !result.Changed {
		t.Fatal("expected a change")
	}
	if result.BackupCreated == "" {
		t.Fatal("expected a backup path")
	}

	backup, err := os.ReadFile(result.BackupCreated)
	if err != nil {
		t.Fatalf("failed to read backup: %v", err)
	}
	if string(backup) != content {
		t.Error("backup must hold the original content")
	}
}

func TestFileParseError(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeTestFile(t, tmpDir, "bad.json", `{broken`)

	result := File(path, Options{})
	if result.Changed {
		t.Error("unparseable file cannot change")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected one error, got %v", result.Errors)
	}
}

func TestFileMissing(t *testing.T) {
	result := File(filepath.Join(t.TempDir(), "nope.json"), Options{})
	if len(result.Errors) != 1 {
		t.Fatalf("expected one error, got %v", result.Errors)
	}
}
