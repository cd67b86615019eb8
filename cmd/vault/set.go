package vaultcmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Store a secret (read without echo from the terminal)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		store, err := newStore()
		if err != nil {
			return err
		}
		secret, err := readSecret(fmt.Sprintf("Enter secret for %q: ", name))
		if err != nil {
			return err
		}
		if secret == "" {
			return errors.New("empty secret; nothing stored")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.Set(ctx, name, []byte(secret)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "secret %q stored\n", name)
		return nil
	},
}
