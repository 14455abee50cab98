package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/gvalop/internal/config"
)

var (
	// Global flags
	cfgFile   string
	logLevel  string
	logFormat string
	spaced    bool
)

var rootCmd = &cobra.Command{
	Use:   "gvalop",
	Short: "Grouped values and operators",
	Long: `gvalop parses expressions made of values, operators, and groupings, and
evaluates them without any operator precedence. Binary operators associate to
the left and unary operators apply to the single item after them, so
"1 + 2 * 3" is 9. Use groupings to say what you mean: "1 + (2 * 3)" is 7.

Tokens for operators and groupings come from the configuration file, which may
be YAML (.yaml, .yml) or TOML. Fields can be overridden with GVALOP_*
environment variables.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json)")
	rootCmd.PersistentFlags().BoolVar(&spaced, "spaced", false, "allow values to contain spaces")
}

// loadConfig loads the config file named by --config and applies the global
// flags over it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	if spaced {
		cfg.Parse.SpacedValues = true
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}
