package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/danpilch/memprof/pkg/memquery"
	"github.com/danpilch/memprof/pkg/output"
)

func newSnapshotCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Take a point-in-time snapshot of this process's memory",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := output.ParseFormat(format)
			if err != nil {
				return err
			}

			snap, err := memquery.Self().Snapshot()
			if err != nil {
				return err
			}

			return output.NewFormatter(f, os.Stdout).RenderSnapshot(snap)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(output.FormatTable), "output format (table, json, tsv)")
	return cmd
}
