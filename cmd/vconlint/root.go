package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vcon-dev/vconlint/internal/config"
	"github.com/vcon-dev/vconlint/internal/ui"
)

var (
	cfgFile string
	vp      = viper.New()
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "vconlint",
	Short: "Validate and migrate vCon conversation files",
	Long: `vconlint scans a directory tree for vCon JSON files and either
validates them against the supported schema rules or migrates them to the
current schema shape.

A file counts as a vCon candidate when it has a .json extension and parses
to an object with a top-level "vcon" key. Candidates are processed in
parallel by a fixed-size worker pool; one bad file never stops the run.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(vp, cfgFile); err != nil {
			return err
		}

		// Flags win over env and config file values.
		if err := vp.BindPFlag("workers", cmd.Root().PersistentFlags().Lookup("workers")); err != nil {
			return err
		}
		if err := vp.BindPFlag("no_color", cmd.Root().PersistentFlags().Lookup("no-color")); err != nil {
			return err
		}

		var err error
		cfg, err = config.Load(vp)
		if err != nil {
			return err
		}

		ui.Init(cfg.NoColor)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default .vconlint.yaml in . or $HOME)")
	rootCmd.PersistentFlags().IntP("workers", "j", 0, "Number of parallel workers (default 4)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
}

// fatal prints an error and exits. Reserved for the pre-run failures that
// stop a run before any file is touched.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
