package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vcon-dev/vconlint/internal/batch"
	"github.com/vcon-dev/vconlint/internal/report"
	"github.com/vcon-dev/vconlint/internal/scan"
	"github.com/vcon-dev/vconlint/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate <directory>",
	Short: "Validate vCon files in a directory",
	Long: `Scan a directory tree for vCon files and validate each one against
the supported schema rules.

Every .json file whose content is an object with a "vcon" key is validated.
The result is a per-file table of findings plus aggregate counts.

Example usage:
  vconlint validate ./conversations
  vconlint validate -j 8 ./conversations`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := args[0]
		start := time.Now()

		fmt.Println(ui.RenderWarn("Scanning directory: " + dir))
		candidates, err := scan.Discover(dir)
		if err != nil {
			fatal("%v", err)
		}

		if len(candidates) == 0 {
			fmt.Println(ui.RenderWarn("No vCon files found"))
			return
		}
		fmt.Println(ui.RenderPass(fmt.Sprintf("Found %d potential vCon files", len(candidates))))

		outcomes := batch.Run(cmd.Context(), candidates, cfg.Workers, batch.ValidateOp())
		summary := report.Summarize(report.ModeValidate, outcomes, time.Since(start))

		fmt.Println()
		fmt.Println(ui.RenderBold("Validation Results:"))
		fmt.Println(ui.ResultsTable(dir, summary))
		fmt.Println()
		fmt.Println(ui.RenderSummary(summary))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
