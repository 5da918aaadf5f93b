package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/danpilch/memprof/pkg/benchmark"
	"github.com/danpilch/memprof/pkg/memquery"
)

func newBenchCmd() *cobra.Command {
	opts := benchmark.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark the overhead of the memory queries themselves",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := memquery.Self()
			probes := []benchmark.Probe{
				{
					Name: "resident bytes",
					Read: reader.ResidentBytes,
				},
				{
					Name: "full snapshot",
					Read: func() (uint64, error) {
						snap, err := reader.Snapshot()
						if err != nil {
							return 0, err
						}
						return snap.RSS, nil
					},
				},
			}

			results := benchmark.Run(probes, opts)
			benchmark.RenderResults(os.Stdout, results, benchmark.MeasureOverhead())
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Iterations, "iterations", opts.Iterations, "queries per probe")
	cmd.Flags().IntVar(&opts.Warmup, "warmup", opts.Warmup, "warmup queries per probe")
	return cmd
}
