package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/spf13/cobra"

	"github.com/danpilch/memprof/pkg/memquery"
	"github.com/danpilch/memprof/pkg/output"
	"github.com/danpilch/memprof/pkg/profiler"
)

func newRunCmd() *cobra.Command {
	var (
		interval time.Duration
		format   string
	)

	cmd := &cobra.Command{
		Use:   "run [flags] -- command [args...]",
		Short: "Run a command and profile its memory while it executes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := output.ParseFormat(format)
			if err != nil {
				return err
			}

			child := exec.Command(args[0], args[1:]...)
			child.Stdin = os.Stdin
			child.Stdout = os.Stdout
			child.Stderr = os.Stderr
			if err := child.Start(); err != nil {
				return fmt.Errorf("cannot start %q: %w", args[0], err)
			}

			p, err := profiler.New(
				profiler.WithInterval(interval),
				profiler.WithReader(memquery.ForPID(int32(child.Process.Pid))),
				profiler.WithLogger(newLogger()),
			)
			if err != nil {
				child.Process.Kill()
				child.Wait()
				return err
			}

			// A non-zero exit is still a completed measurement; only a
			// failure to wait on the child aborts the profile.
			code, summary, err := profiler.Measure(p, func() (int, error) {
				waitErr := child.Wait()
				var exitErr *exec.ExitError
				if errors.As(waitErr, &exitErr) {
					return exitErr.ExitCode(), nil
				}
				if waitErr != nil {
					return 0, waitErr
				}
				return 0, nil
			})
			if err != nil {
				return err
			}

			title := fmt.Sprintf("Memory Profile: %s (pid %d)", args[0], child.Process.Pid)
			if err := output.NewFormatter(f, os.Stdout).RenderSummary(title, summary); err != nil {
				return err
			}
			if code != 0 {
				return fmt.Errorf("command exited with code %d", code)
			}
			return nil
		},
	}

	cmd.Flags().DurationVarP(&interval, "interval", "i", profiler.DefaultInterval, "poll interval")
	cmd.Flags().StringVarP(&format, "format", "f", string(output.FormatTable), "output format (table, json, tsv)")
	return cmd
}
