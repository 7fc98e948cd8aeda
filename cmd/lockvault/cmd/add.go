package cmd

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	addCategory string
	addTags     []string
)

var addCmd = &cobra.Command{
	Use:   "add <record>",
	Short: "Add an empty record to the vault",
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

		if err := v.AddRecord(args[0], addCategory, addTags); err != nil {
			return err
		}
		if err := v.Close(ctx); err != nil {
			return err
		}

		color.Green("Record %q added", args[0])
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addCategory, "category", "", "record category")
	addCmd.Flags().StringSliceVar(&addTags, "tags", nil, "record tags")
	rootCmd.AddCommand(addCmd)
}
