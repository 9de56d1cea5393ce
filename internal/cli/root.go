// Package cli implements the cycleprof command tree.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cycleprof/cycleprof/internal/config"
	"github.com/cycleprof/cycleprof/internal/logging"
	"github.com/cycleprof/cycleprof/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "cycleprof",
	Short: "Cycleprof - call-stack-aware cycle-count profiling",
	Long: `Measure elapsed hardware cycles for named, possibly-nested phases of a
program and report self time, cumulative time, and hit counts per phase.

The measurement engine lives in pkg/profiler and is meant to be embedded in
your own programs; this binary demonstrates it and hosts the calibration and
repetition-testing tools around it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Override log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(newDemoCmd())
	rootCmd.AddCommand(newCalibrateCmd())
	rootCmd.AddCommand(newRepTestCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("Cycleprof version %s\n", version.Version)
			cmd.Printf("Git commit: %s\n", version.GitCommit)
			cmd.Printf("Build date: %s\n", version.BuildDate)
			cmd.Printf("Go version: %s\n", version.GoVersion)
		},
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// setup resolves config and builds the command's logger from the persistent
// flags.
func setup(cmd *cobra.Command, component string) (config.Config, zerolog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, zerolog.Nop(), err
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
		if err := cfg.Validate(); err != nil {
			return cfg, zerolog.Nop(), err
		}
	}

	logger := logging.NewWithComponent(logging.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	}, component)
	return cfg, logger, nil
}

// colorEnabled resolves the report color mode against the output terminal.
func colorEnabled(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}
