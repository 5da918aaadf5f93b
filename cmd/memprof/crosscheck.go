package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/danpilch/memprof/pkg/crosscheck"
	"github.com/danpilch/memprof/pkg/profiler"
	"github.com/danpilch/memprof/pkg/workload"
)

func newCrosscheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crosscheck",
		Short: "Validate RSS readings against independent OS sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			readings, err := crosscheck.GatherRSS()
			if err != nil {
				return err
			}
			validation := crosscheck.NewValidator().CrossCheck(readings)

			// A short measured allocation exercises the whole pipeline so
			// the sanity checks inspect a real summary.
			p, err := profiler.New(
				profiler.WithInterval(20*time.Millisecond),
				profiler.WithLogger(newLogger()),
			)
			if err != nil {
				return err
			}
			_, summary, err := profiler.Measure(p, func() (uint64, error) {
				return workload.Allocate(16, 100*time.Millisecond), nil
			})
			if err != nil {
				return err
			}

			crosscheck.Report(os.Stdout, validation, crosscheck.RunSanityChecks(summary))
			return nil
		},
	}

	return cmd
}
