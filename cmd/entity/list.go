package entitycmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/flarebyte/dbreset/internal/registry"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var flagListOutput string

type entitySummary struct {
	Name     string   `json:"name"`
	Delete   int      `json:"delete_tables"`
	Reset    int      `json:"reset_tables"`
	Indexers []string `json:"indexers"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List entities with their table and indexer counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		outFmt := strings.ToLower(strings.TrimSpace(flagListOutput))
		if outFmt != "table" && outFmt != "json" {
			return errors.New("--output must be 'table' or 'json'")
		}
		reg := registry.Default()
		rows := make([]entitySummary, 0, len(reg.Names()))
		for _, name := range reg.Names() {
			rc, err := reg.Recipe(name)
			if err != nil {
				return err
			}
			rows = append(rows, entitySummary{
				Name:     name,
				Delete:   len(rc.Delete),
				Reset:    len(rc.ResetAutoIncrement),
				Indexers: rc.Indexers,
			})
		}

		out := cmd.OutOrStdout()
		if outFmt == "json" {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		}
		tw := tablewriter.NewWriter(out)
		tw.SetHeader([]string{"ENTITY", "DELETE", "RESET AI", "INDEXERS"})
		tw.SetAutoWrapText(false)
		for _, r := range rows {
			tw.Append([]string{r.Name, fmt.Sprintf("%d", r.Delete), fmt.Sprintf("%d", r.Reset), strings.Join(r.Indexers, ", ")})
		}
		tw.Render()
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&flagListOutput, "output", "table", "Output format: table or json")
}
