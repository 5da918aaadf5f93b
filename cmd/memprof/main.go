// Package main provides the memprof binary, a process memory profiler.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var verbose bool

func main() {
	rootCmd := &cobra.Command{
		Use:           "memprof",
		Short:         "memprof - profile process memory usage around a unit of work",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	rootCmd.AddCommand(newSnapshotCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newDemoCmd())
	rootCmd.AddCommand(newBenchCmd())
	rootCmd.AddCommand(newCrosscheckCmd())
	rootCmd.AddCommand(newBaselineCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the logger handed to profilers. The rendered report goes
// to stdout separately, so the log sink stays quiet unless asked for.
func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if verbose {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger
}
