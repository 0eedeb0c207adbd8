// Command fluentgo is the CLI glue of SPEC_FULL.md §6.9: it runs the
// bundled example scenarios and optionally serves their live statistics as
// Prometheus metrics. None of the engine's core packages import cobra,
// client_golang or yaml.v3 — those stay confined to this command and to
// the config package, the way the teacher keeps gen/prop/quick free of
// anything beyond the standard library. zerolog is the exception: explorer
// and check import it for their optional Logger.
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgFile       string
	verbosityFlag string
	logger        zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "fluentgo",
	Short: "Run and inspect fluentgo property-based test scenarios",
	Long: `fluentgo is the command-line front end for the fluentgo property-based
testing engine: it runs bundled example scenarios, prints their FluentResult
through the report package, and can expose a scenario's live statistics as
Prometheus metrics.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(verbosityFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a fluentgo strategy config YAML file")
	rootCmd.PersistentFlags().StringVar(&verbosityFlag, "verbosity", "normal", "quiet|normal|verbose|debug")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
}

func newLogger(verbosity string) zerolog.Logger {
	level := zerolog.InfoLevel
	switch verbosity {
	case "quiet":
		level = zerolog.ErrorLevel
	case "verbose":
		level = zerolog.DebugLevel
	case "debug":
		level = zerolog.TraceLevel
	}
	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(console).With().Timestamp().Logger().Level(level)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
