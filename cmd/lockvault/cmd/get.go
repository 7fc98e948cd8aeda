package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <record> <key>",
	Short: "Read a field from a record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		v, err := openVault(ctx)
		if err != nil {
			return err
		}

		value, ok := v.GetData(args[0], args[1])
		if !ok {
			return fmt.Errorf("no field %q on record %q", args[1], args[0])
		}

		raw, err := json.Marshal(value)
		if err != nil {
			return err
		}
		fmt.Println(string(raw))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
