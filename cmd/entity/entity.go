package entitycmd

import (
	"github.com/spf13/cobra"
)

var EntityCmd = &cobra.Command{
	Use:   "entity",
	Short: "Inspect the entities known to setup:db-data:reset",
}

func init() {
	EntityCmd.AddCommand(listCmd)
	EntityCmd.AddCommand(showCmd)
}
