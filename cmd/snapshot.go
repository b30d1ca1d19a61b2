package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var listSnapshots bool

// snapshotCmd uploads the mirror tree to object storage.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Upload the whole mirror tree to the storage bucket",
	Long: `Reads the mirror root and uploads it as JSON under backup.prefix, keeping the newest backup.keep snapshots.
With --list, prints the existing snapshot names instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		rt, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		svc := rt.backup()
		if listSnapshots {
			names, err := svc.List(ctx)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		}

		name, err := svc.Snapshot(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), name)
		return nil
	},
}

func init() {
	snapshotCmd.Flags().BoolVar(&listSnapshots, "list", false, "List existing snapshots")
	RootCmd.AddCommand(snapshotCmd)
}
