package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"lockvault/internal/config"
	"lockvault/internal/domain/vault"
	"lockvault/internal/infrastructure/backend"
	fileBackend "lockvault/internal/infrastructure/backend/file"
	postgresBackend "lockvault/internal/infrastructure/backend/postgres"
	sqliteBackend "lockvault/internal/infrastructure/backend/sqlite"
)

var (
	vaultName   string
	vaultPath   string
	backendKind string
	username    string
)

var rootCmd = &cobra.Command{
	Use:   "lockvault",
	Short: "Lockvault is a secure storage vault for secrets",
	Long: `Lockvault keeps named records with encrypted bodies in a vault
backed by the filesystem, sqlite or postgres. Record bodies are
encrypted at rest; the vault key itself is stored wrapped under
your passphrase and never touches disk in cleartext.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() { viper.AutomaticEnv() })

	rootCmd.PersistentFlags().StringVar(&vaultName, "vault", "", "vault name (env VAULT_NAME)")
	rootCmd.PersistentFlags().StringVar(&vaultPath, "path", "", "vault location (env VAULT_PATH)")
	rootCmd.PersistentFlags().StringVar(&backendKind, "backend", "", "backend: file, sqlite or postgres (env BACKEND)")
	rootCmd.PersistentFlags().StringVar(&username, "user", "", "user name (env VAULT_USER)")
}

func resolveTarget() (name, location string, err error) {
	name = vaultName
	if name == "" {
		name = viper.GetString("vault_name")
	}
	location = vaultPath
	if location == "" {
		location = viper.GetString("vault_path")
	}
	if location == "" {
		location = "."
	}
	if name == "" {
		return "", "", fmt.Errorf("no vault name given, use --vault or VAULT_NAME")
	}
	return name, location, nil
}

func resolveUser() (string, error) {
	if username != "" {
		return username, nil
	}
	if u := viper.GetString("vault_user"); u != "" {
		return u, nil
	}
	return "", fmt.Errorf("no user name given, use --user or VAULT_USER")
}

func openBackend(ctx context.Context, name, location string) (backend.Backend, error) {
	kind := backendKind
	if kind == "" {
		kind = viper.GetString("backend")
	}
	if kind == "" {
		kind = config.BackendFile
	}

	switch kind {
	case config.BackendFile:
		return fileBackend.New(location, name), nil
	case config.BackendSQLite:
		return sqliteBackend.New(filepath.Join(location, name+".db"))
	case config.BackendPostgres:
		return postgresBackend.New(ctx,
			viper.GetString("database_uri"),
			viper.GetString("migrations_path"))
	default:
		return nil, fmt.Errorf("unknown backend %q", kind)
	}
}

func promptSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read passphrase: %w", err)
	}
	return string(secret), nil
}

// openVault opens the addressed vault and authenticates the user,
// unlocking the record bodies.
func openVault(ctx context.Context) (*vault.Vault, error) {
	name, location, err := resolveTarget()
	if err != nil {
		return nil, err
	}
	user, err := resolveUser()
	if err != nil {
		return nil, err
	}

	store, err := openBackend(ctx, name, location)
	if err != nil {
		return nil, err
	}

	v, err := vault.Open(ctx, name, location, store)
	if err != nil {
		return nil, err
	}

	secret, err := promptSecret("Passphrase: ")
	if err != nil {
		return nil, err
	}
	if _, err := v.Authenticate(user, secret); err != nil {
		return nil, fmt.Errorf("authentication failed")
	}
	return v, nil
}
