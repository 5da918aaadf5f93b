package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/danpilch/memprof/pkg/output"
	"github.com/danpilch/memprof/pkg/profiler"
	"github.com/danpilch/memprof/pkg/workload"
)

func newDemoCmd() *cobra.Command {
	var (
		interval time.Duration
		format   string
		mb       int
		rounds   int
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Profile a synthetic allocation workload",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := output.ParseFormat(format)
			if err != nil {
				return err
			}

			p, err := profiler.New(
				profiler.WithInterval(interval),
				profiler.WithLogger(newLogger()),
			)
			if err != nil {
				return err
			}

			_, summary, err := profiler.Measure(p, func() (uint64, error) {
				return workload.Churn(mb, rounds, 2*interval), nil
			})
			if err != nil {
				return err
			}

			return output.NewFormatter(f, os.Stdout).RenderSummary("Memory Profile: allocation demo", summary)
		},
	}

	cmd.Flags().DurationVarP(&interval, "interval", "i", profiler.DefaultInterval, "poll interval")
	cmd.Flags().StringVarP(&format, "format", "f", string(output.FormatTable), "output format (table, json, tsv)")
	cmd.Flags().IntVar(&mb, "mb", 64, "MiB to allocate per round")
	cmd.Flags().IntVar(&rounds, "rounds", 3, "allocation rounds")
	return cmd
}
