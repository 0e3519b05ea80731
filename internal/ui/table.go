package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vcon-dev/vconlint/internal/report"
)

// ResultsTable renders the per-file outcome table for a run. Paths are shown
// relative to the scanned root where possible.
func ResultsTable(root string, s report.Summary) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Width(Width()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("File", "Status", "Errors")

	for _, o := range s.Outcomes {
		t.Row(relPath(root, o.Path), statusCell(s.Mode, o.Changed, o.Failed, len(o.Findings)), strings.Join(o.Findings, "\n"))
	}

	return t.Render()
}

// RenderSummary renders the closing totals block for a run.
func RenderSummary(s report.Summary) string {
	var b strings.Builder
	b.WriteString(RenderBold("Summary:") + "\n")
	fmt.Fprintf(&b, "Total files: %d\n", s.Total)
	switch s.Mode {
	case report.ModeValidate:
		fmt.Fprintf(&b, "Valid: %s\n", RenderPass(fmt.Sprintf("%d", s.Valid)))
		fmt.Fprintf(&b, "Invalid: %s\n", RenderFail(fmt.Sprintf("%d", s.Invalid)))
	case report.ModeMigrate:
		fmt.Fprintf(&b, "Changed: %s\n", RenderPass(fmt.Sprintf("%d", s.Changed)))
		fmt.Fprintf(&b, "Unchanged: %d\n", s.Unchanged)
		fmt.Fprintf(&b, "Errors: %s\n", RenderFail(fmt.Sprintf("%d", s.Errored)))
	}
	fmt.Fprintf(&b, "Time taken: %.2f seconds", s.Elapsed.Seconds())
	return b.String()
}

func statusCell(mode report.Mode, changed, failed bool, findings int) string {
	switch mode {
	case report.ModeMigrate:
		switch {
		case failed:
			return RenderFail("Error")
		case changed:
			return RenderPass("Changed")
		default:
			return "Unchanged"
		}
	default:
		if findings > 0 {
			return RenderFail("Invalid")
		}
		return RenderPass("Valid")
	}
}

func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
