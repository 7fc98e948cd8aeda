package cmd

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <record>",
	Short: "Delete a record from the vault",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		v, err := openVault(ctx)
		if err != nil {
			return err
		}

		if err := v.DeleteRecord(ctx, args[0]); err != nil {
			return err
		}
		if err := v.Close(ctx); err != nil {
			return err
		}

		color.Green("Record %q deleted", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
