// Package scan discovers candidate vCon files under a directory tree.
//
// A file qualifies as a candidate only if its name ends in .json
// (case-insensitive) and its content parses to a JSON object containing the
// key "vcon". The sniff is a filter, not a validator: any read, decode, or
// parse failure simply disqualifies the file and never aborts the scan.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
)

// IsCandidate reports whether the file at path looks like a vCon document.
// The value under the "vcon" key is not inspected at this stage; full
// validation happens later in the pipeline.
func IsCandidate(path string) bool {
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return false
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return false
	}
	_, ok = obj["vcon"]
	return ok
}

// Discover walks root recursively and returns every candidate file path.
//
// A nonexistent or unreadable root is the one fatal condition and returns an
// error before any file is touched. Unreadable subdirectories and files are
// skipped, matching the filter semantics of the classifier. An empty result
// with a nil error means the tree simply held no vCon files.
func Discover(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("directory not found: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", root)
	}

	var candidates []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip unreadable entries; the scan is best-effort.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if IsCandidate(path) {
			candidates = append(candidates, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	return candidates, nil
}
