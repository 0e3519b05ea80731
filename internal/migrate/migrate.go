// Package migrate normalizes vCon documents to the current schema shape.
//
// The transform fixes the doubled "+00+00:00" timezone suffix that early
// exporters wrote into created_at/updated_at, and removes the retired
// redacted/appended/group markers. Rules are independent and idempotent:
// applying the transform to an already-migrated document changes nothing
// and reports unchanged, so unchanged files are never rewritten.
package migrate

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vcon-dev/vconlint/internal/vcon"
)

// brokenSuffix is the malformed timezone tail produced by the buggy
// exporter; fixedSuffix is its correct form.
const (
	brokenSuffix = "+00+00:00"
	fixedSuffix  = "+00:00"
)

// timestampFields are the top-level fields subject to the suffix fix.
var timestampFields = []string{"created_at", "updated_at"}

// retiredMarkers are top-level keys removed outright by the migration.
var retiredMarkers = []string{"redacted", "appended", "group"}

// Options configures a file migration.
type Options struct {
	DryRun bool // report changes without writing
	Backup bool // copy the original aside before rewriting
}

// Result describes what happened to one file.
type Result struct {
	Changed       bool
	BackupCreated string
	Errors        []string
}

// Apply runs every normalization rule against the document in place and
// reports whether anything changed. A non-object document is left untouched.
func Apply(doc *vcon.Document) bool {
	obj := doc.Object()
	if obj == nil {
		return false
	}

	changed := false

	for _, field := range timestampFields {
		v, ok := obj[field]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok || !strings.Contains(s, brokenSuffix) {
			continue
		}
		obj[field] = strings.ReplaceAll(s, brokenSuffix, fixedSuffix)
		changed = true
	}

	for _, key := range retiredMarkers {
		if _, ok := obj[key]; ok {
			delete(obj, key)
			changed = true
		}
	}

	return changed
}

// File migrates a single vCon file in place.
//
// The file is parsed, the transform applied, and on change the document is
// written back to the same path atomically. Unchanged files are not touched
// at all. Parse and write failures are captured on the Result rather than
// returned, so one bad file never aborts a batch.
func File(path string, opts Options) Result {
	var result Result

	doc, err := vcon.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	result.Changed = Apply(doc)
	if !result.Changed || opts.DryRun {
		return result
	}

	if opts.Backup {
		backupPath, err := writeBackup(path)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			return result
		}
		result.BackupCreated = backupPath
	}

	if err := doc.WriteFile(path); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to write %s: %v", path, err))
	}

	return result
}

// writeBackup copies the original file aside with a timestamped suffix.
func writeBackup(path string) (string, error) {
	backupPath := path + ".backup." + time.Now().Format("20060102-150405")
	input, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read original for backup: %w", err)
	}
	if err := os.WriteFile(backupPath, input, 0600); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}
	return backupPath, nil
}
