package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the records in the vault",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		v, err := openVault(ctx)
		if err != nil {
			return err
		}

		headers := v.Headers()
		if len(headers) == 0 {
			fmt.Println("vault is empty")
			return nil
		}

		for _, h := range headers {
			line := color.CyanString(h.Name)
			if h.Category != "" {
				line += "  " + h.Category
			}
			if len(h.Tags) > 0 {
				line += "  [" + strings.Join(h.Tags, ", ") + "]"
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
