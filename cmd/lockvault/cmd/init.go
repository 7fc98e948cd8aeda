package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lockvault/internal/domain/vault"
)

var administrated bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new vault",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		name, location, err := resolveTarget()
		if err != nil {
			return err
		}

		secret, err := promptSecret("New passphrase: ")
		if err != nil {
			return err
		}
		confirm, err := promptSecret("Repeat passphrase: ")
		if err != nil {
			return err
		}
		if secret != confirm {
			return fmt.Errorf("passphrases do not match")
		}

		store, err := openBackend(ctx, name, location)
		if err != nil {
			return err
		}

		gen, err := initGenerator(name, location, secret)
		if err != nil {
			return err
		}

		v, err := vault.Create(ctx, gen, store)
		if err != nil {
			return err
		}
		if err := v.Close(ctx); err != nil {
			return err
		}

		color.Green("Vault %q created at %s", name, location)
		return nil
	},
}

// initGenerator assembles the creation parameters. An administrated
// vault comes with its own root admin account, so a user name is only
// required on the solo-user path.
func initGenerator(name, location, secret string) (*vault.Generator, error) {
	gen := vault.NewGenerator().Path(name, location)
	if administrated {
		return gen.Administrated(secret), nil
	}
	user, err := resolveUser()
	if err != nil {
		return nil, err
	}
	return gen.SoloUser(user, secret), nil
}

func init() {
	initCmd.Flags().BoolVar(&administrated, "administrated", false,
		"create an administrated vault with a root admin account")
	rootCmd.AddCommand(initCmd)
}
