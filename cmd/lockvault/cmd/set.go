package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lockvault/internal/domain/record"
)

var setKind string

var setCmd = &cobra.Command{
	Use:   "set <record> <key> <value>",
	Short: "Set a field in a record",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		value, err := parsePayload(setKind, args[2])
		if err != nil {
			return err
		}

		v, err := openVault(ctx)
		if err != nil {
			return err
		}

		if !v.AddData(args[0], args[1], value) {
			return fmt.Errorf("record %q not found", args[0])
		}
		if err := v.Close(ctx); err != nil {
			return err
		}

		color.Green("Field %q set on %q", args[1], args[0])
		return nil
	},
}

func parsePayload(kind, raw string) (record.Payload, error) {
	switch kind {
	case "text":
		return record.TextPayload(raw), nil
	case "number":
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return record.Payload{}, fmt.Errorf("not a number: %q", raw)
		}
		return record.NumberPayload(n), nil
	case "boolean":
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return record.Payload{}, fmt.Errorf("not a boolean: %q", raw)
		}
		return record.BooleanPayload(b), nil
	default:
		return record.Payload{}, fmt.Errorf("unknown payload kind %q", kind)
	}
}

func init() {
	setCmd.Flags().StringVar(&setKind, "kind", "text", "payload kind: text, number or boolean")
	rootCmd.AddCommand(setCmd)
}
