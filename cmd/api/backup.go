package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Run the CSV export and the snapshot once, then exit",
	RunE:  runBackup,
}

func runBackup(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	count, err := a.store.Count(cmd.Context())
	if err != nil {
		return err
	}

	res, err := a.backup.Run(cmd.Context())
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "registros: %d\n", count)
	if res.ExportPath != "" {
		fmt.Fprintf(out, "csv:       %s\n", res.ExportPath)
	}
	if res.SnapshotPath != "" {
		fmt.Fprintf(out, "snapshot:  %s\n", res.SnapshotPath)
	}
	for _, key := range res.MirroredKeys {
		fmt.Fprintf(out, "bucket:    %s\n", key)
	}
	return err
}
