package configcmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/flarebyte/dbreset/internal/backend"
	cfgpkg "github.com/flarebyte/dbreset/internal/config"
	osdao "github.com/flarebyte/dbreset/internal/dao/opensearch"
	"github.com/flarebyte/dbreset/internal/registry"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the database, registry tables and indexer backend are reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cfgpkg.Load()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		out := cmd.OutOrStdout()

		sess, err := backend.Open(ctx, cfg, backend.Options{Out: out})
		if err != nil {
			return err
		}
		defer sess.Close()
		fmt.Fprintf(out, "database: ok (%s %s:%d/%s)\n", cfg.Database.Driver, cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)

		missing, err := sess.MissingTables(ctx, registryTables(registry.Default()))
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			fmt.Fprintf(out, "tables: %d missing: %s\n", len(missing), strings.Join(missing, ", "))
		} else {
			fmt.Fprintln(out, "tables: ok")
		}

		switch strings.ToLower(cfg.Indexer.Backend) {
		case cfgpkg.BackendMagento:
			bin := filepath.Join(cfg.Indexer.MagentoRoot, "bin", "magento")
			if _, err := os.Stat(bin); err != nil {
				return fmt.Errorf("indexer: %s not found: %w", bin, err)
			}
			fmt.Fprintf(out, "indexer: ok (%s)\n", bin)
		case cfgpkg.BackendOpenSearch:
			status, err := osdao.NewClientFromConfig(cfg.OpenSearch).ClusterHealth(ctx)
			if err != nil {
				return fmt.Errorf("indexer: opensearch: %w", err)
			}
			fmt.Fprintf(out, "indexer: opensearch cluster %s\n", status)
		default:
			fmt.Fprintln(out, "indexer: none")
		}
		if len(missing) > 0 {
			return errors.New("config check failed: missing tables")
		}
		return nil
	},
}

// registryTables lists every table touched by reg, once, in first-seen order.
func registryTables(reg *registry.Registry) []string {
	seen := map[string]bool{}
	var out []string
	add := func(t string) {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	for _, name := range reg.Names() {
		rc, _ := reg.Recipe(name)
		for _, d := range rc.Delete {
			add(d.Table)
		}
		for _, t := range rc.ResetAutoIncrement {
			add(t)
		}
	}
	return out
}
