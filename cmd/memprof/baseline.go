package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/danpilch/memprof/pkg/baseline"
	"github.com/danpilch/memprof/pkg/profiler"
	"github.com/danpilch/memprof/pkg/workload"
)

func newBaselineCmd() *cobra.Command {
	var (
		interval time.Duration
		dir      string
		mb       int
		rounds   int
	)

	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Save and compare memory profile baselines",
	}

	cmd.PersistentFlags().DurationVarP(&interval, "interval", "i", profiler.DefaultInterval, "poll interval")
	cmd.PersistentFlags().StringVar(&dir, "dir", "", "baseline directory (default ~/.memprof/baselines)")
	cmd.PersistentFlags().IntVar(&mb, "mb", 64, "MiB to allocate per round")
	cmd.PersistentFlags().IntVar(&rounds, "rounds", 3, "allocation rounds")

	profileWorkload := func() (profiler.Summary, error) {
		p, err := profiler.New(
			profiler.WithInterval(interval),
			profiler.WithLogger(newLogger()),
		)
		if err != nil {
			return profiler.Summary{}, err
		}
		_, summary, err := profiler.Measure(p, func() (uint64, error) {
			return workload.Churn(mb, rounds, 2*interval), nil
		})
		return summary, err
	}

	saveCmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Profile the reference workload and save the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := profileWorkload()
			if err != nil {
				return err
			}

			b := baseline.New(args[0], summary)
			if err := b.Save(dir); err != nil {
				return err
			}
			fmt.Printf("Saved baseline %q (peak %.2f MB)\n", b.Name, summary.PeakMegabytes())
			return nil
		},
	}

	compareCmd := &cobra.Command{
		Use:   "compare <name>",
		Short: "Re-profile the reference workload and compare against a saved baseline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := baseline.Load(args[0], dir)
			if err != nil {
				return err
			}

			summary, err := profileWorkload()
			if err != nil {
				return err
			}

			baseline.RenderComparison(os.Stdout, b, baseline.Compare(b, summary))
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved baselines",
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := baseline.List(dir)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Println("No baselines saved.")
				return nil
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	cmd.AddCommand(saveCmd, compareCmd, listCmd)
	return cmd
}
