package configcmd

import (
	"fmt"

	cfgpkg "github.com/flarebyte/dbreset/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the merged configuration to stdout (passwords masked)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cfgpkg.Load()
		if err != nil {
			return err
		}
		if cfg.Database.Password != "" {
			cfg.Database.Password = "********"
		}
		if cfg.OpenSearch.Password != "" {
			cfg.OpenSearch.Password = "********"
		}
		b, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		out.Write(b)
		if len(b) == 0 || b[len(b)-1] != '\n' {
			fmt.Fprintln(out)
		}
		return nil
	},
}
