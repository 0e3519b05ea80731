package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vcon-dev/vconlint/internal/batch"
	"github.com/vcon-dev/vconlint/internal/migrate"
	"github.com/vcon-dev/vconlint/internal/report"
	"github.com/vcon-dev/vconlint/internal/scan"
	"github.com/vcon-dev/vconlint/internal/ui"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate <directory>",
	Short: "Migrate vCon files to the current schema shape",
	Long: `Scan a directory tree for vCon files and normalize each one:

  - the malformed "+00+00:00" timezone suffix in created_at/updated_at
    becomes "+00:00"
  - the retired redacted, appended, and group keys are removed

Changed files are rewritten in place atomically; unchanged files are not
touched. The rewrite is destructive, so on a terminal the command asks for
confirmation first unless --yes is given. Use --backup to keep a timestamped
copy of each file before it is rewritten, or --dry-run to preview.

Example usage:
  vconlint migrate ./conversations
  vconlint migrate --dry-run ./conversations
  vconlint migrate --backup --yes ./conversations`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := args[0]
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		backup, _ := cmd.Flags().GetBool("backup")
		yes, _ := cmd.Flags().GetBool("yes")

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

		if !dryRun && !yes && term.IsTerminal(int(os.Stdin.Fd())) {
			var proceed bool
			prompt := huh.NewConfirm().
				Title(fmt.Sprintf("Rewrite up to %d vCon files under %s in place?", len(candidates), dir)).
				Value(&proceed)
			if err := prompt.Run(); err != nil {
				fatal("%v", err)
			}
			if !proceed {
				fmt.Println(ui.RenderWarn("Migration aborted"))
				return
			}
		}

		op := batch.MigrateOp(migrate.Options{DryRun: dryRun, Backup: backup})
		outcomes := batch.Run(cmd.Context(), candidates, cfg.Workers, op)
		summary := report.Summarize(report.ModeMigrate, outcomes, time.Since(start))

		fmt.Println()
		if dryRun {
			fmt.Println(ui.RenderBold("Migration Results (dry run):"))
		} else {
			fmt.Println(ui.RenderBold("Migration Results:"))
		}
		fmt.Println(ui.ResultsTable(dir, summary))
		fmt.Println()
		fmt.Println(ui.RenderSummary(summary))
	},
}

func init() {
	migrateCmd.Flags().Bool("dry-run", false, "Report what would change without writing")
	migrateCmd.Flags().Bool("backup", false, "Keep a timestamped copy of each file before rewriting")
	migrateCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(migrateCmd)
}
