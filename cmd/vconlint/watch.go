package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vcon-dev/vconlint/internal/batch"
	"github.com/vcon-dev/vconlint/internal/report"
	"github.com/vcon-dev/vconlint/internal/scan"
	"github.com/vcon-dev/vconlint/internal/ui"
	"github.com/vcon-dev/vconlint/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <directory>",
	Short: "Continuously validate vCon files as they change",
	Long: `Run a full validation pass over the directory, then keep watching
the tree and re-validate candidate files as they are created or modified.

Findings are written to the watch log. With --log-file the log goes to a
rotating file instead of stderr, which suits running under a process
manager.

Example usage:
  vconlint watch ./conversations
  vconlint watch --log-file /var/log/vconlint.log ./conversations`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := args[0]

		logFile, _ := cmd.Flags().GetString("log-file")
		if logFile == "" {
			logFile = cfg.LogFile
		}

		logger := log.New(os.Stderr, "[watch] ", log.LstdFlags)
		if logFile != "" {
			logger.SetOutput(&lumberjack.Logger{
				Filename:   logFile,
				MaxSize:    10, // megabytes
				MaxBackups: 3,
				MaxAge:     28, // days
			})
		}

		start := time.Now()
		candidates, err := scan.Discover(dir)
		if err != nil {
			fatal("%v", err)
		}

		// Initial full pass so the log starts from a known state.
		outcomes := batch.Run(cmd.Context(), candidates, cfg.Workers, batch.ValidateOp())
		summary := report.Summarize(report.ModeValidate, outcomes, time.Since(start))
		logger.Printf("initial pass: %d files, %d valid, %d invalid", summary.Total, summary.Valid, summary.Invalid)
		for _, o := range outcomes {
			for _, f := range o.Findings {
				logger.Printf("%s: %s", o.Path, f)
			}
		}

		fmt.Println(ui.RenderAccent(fmt.Sprintf("Watching %s (%d vCon files)", dir, summary.Total)))
		fmt.Println("Press Ctrl+C to stop")

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		runner := watch.NewRunner(logger)
		if err := runner.Run(ctx, dir); err != nil {
			fatal("%v", err)
		}
	},
}

func init() {
	watchCmd.Flags().String("log-file", "", "Write the watch log to a rotating file")
	rootCmd.AddCommand(watchCmd)
}
