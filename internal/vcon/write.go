package vcon

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// WriteFile writes the document back to disk with two-space indentation.
//
// The write is atomic: data goes to a temp file next to the target which is
// then renamed over it, so a crash mid-write cannot leave a half-written
// vCon behind.
func (d *Document) WriteFile(path string) error {
	data, err := json.MarshalIndent(d.raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}
