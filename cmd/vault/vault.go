package vaultcmd

import (
	"github.com/flarebyte/dbreset/internal/secretinput"
	"github.com/flarebyte/dbreset/internal/vault"
	"github.com/spf13/cobra"
)

// Swapped in tests.
var (
	newStore   = vault.New
	readSecret = secretinput.Read
)

var VaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Manage secrets referenced by database.password_secret",
}

func init() {
	VaultCmd.AddCommand(setCmd)
	VaultCmd.AddCommand(unsetCmd)
}
