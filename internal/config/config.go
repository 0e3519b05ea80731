// Package config layers vconlint settings from defaults, an optional
// config file, VCONLINT_* environment variables, and command-line flags.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/vcon-dev/vconlint/internal/batch"
)

// Config holds the runtime settings for a vconlint run.
//
// Fields:
//   - Workers: size of the batch worker pool.
//   - NoColor: disable ANSI styling in terminal output.
//   - LogFile: optional rotating log file for watch mode.
type Config struct {
	Workers int    `mapstructure:"workers"`
	NoColor bool   `mapstructure:"no_color"`
	LogFile string `mapstructure:"log_file"`
}

// Init registers defaults and wires env and config-file sources into the
// given viper instance. Flag binding happens at the CLI layer; precedence is
// flags over env over config file over defaults.
func Init(v *viper.Viper, cfgFile string) error {
	v.SetDefault("workers", batch.DefaultWorkers)
	v.SetDefault("no_color", false)
	v.SetDefault("log_file", "")

	v.SetEnvPrefix("VCONLINT")
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".vconlint")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	return nil
}

// Load materializes the Config from a prepared viper instance.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = batch.DefaultWorkers
	}
	return cfg, nil
}
