package cmd

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Persist the vault state to its backend",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		v, err := openVault(ctx)
		if err != nil {
			return err
		}

		if err := v.Sync(ctx); err != nil {
			return err
		}

		md := v.Metadata()
		color.Green("Vault %q synced, %d records", md.Name, md.Size)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
