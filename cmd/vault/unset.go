package vaultcmd

import (
	"context"
	"fmt"
	"time"

	"github.com/flarebyte/dbreset/internal/vault"
	"github.com/spf13/cobra"
)

var unsetCmd = &cobra.Command{
	Use:   "unset <name>",
	Short: "Delete a stored secret",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		ok, err := store.Has(ctx, args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("secret %q: %w", args[0], vault.ErrSecretNotFound)
		}
		if err := store.Unset(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "secret %q removed\n", args[0])
		return nil
	},
}
