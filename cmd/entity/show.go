package entitycmd

import (
	"github.com/flarebyte/dbreset/internal/registry"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var showCmd = &cobra.Command{
	Use:   "show <entity>",
	Short: "Print the reset recipe of one entity as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rc, err := registry.Default().Recipe(args[0])
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(map[string]registry.Recipe{args[0]: rc})
	},
}
