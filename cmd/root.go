package cmd

import (
	"fmt"
	"os"

	configcmd "github.com/flarebyte/dbreset/cmd/config"
	entitycmd "github.com/flarebyte/dbreset/cmd/entity"
	"github.com/flarebyte/dbreset/cmd/setup"
	vaultcmd "github.com/flarebyte/dbreset/cmd/vault"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var flagLogLevel string

var rootCmd = &cobra.Command{
	Use:   "dbreset",
	Short: "Reset Magento entities back to an empty database state",
	Long: `dbreset deletes the rows of predefined e-commerce entities (customers,
categories, products, orders, ...), restarts their auto-increment counters
and rebuilds the related indexers. Run it against disposable databases only.`,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lvl, err := logrus.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
		logrus.SetLevel(lvl)
		logrus.SetOutput(os.Stderr)
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(setup.ResetCmd)
	rootCmd.AddCommand(entitycmd.EntityCmd)
	rootCmd.AddCommand(configcmd.ConfigCmd)
	rootCmd.AddCommand(vaultcmd.VaultCmd)
}
