package setup

import (
	"context"
	"strings"
	"time"

	"github.com/flarebyte/dbreset/internal/backend"
	cfgpkg "github.com/flarebyte/dbreset/internal/config"
	"github.com/flarebyte/dbreset/internal/registry"
	"github.com/flarebyte/dbreset/internal/reset"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagExtraTables []string
	flagDryRun      bool
	flagTimeout     time.Duration
)

// ResetCmd empties the requested entities, or all of them when none are given.
var ResetCmd = &cobra.Command{
	Use:   "setup:db-data:reset [entity...]",
	Short: "Reset database command",
	Long: `Delete entity data, reset auto-increment keys and reindex.

Entities: ` + strings.Join(registry.Default().Names(), ", ") + `.
Omit the entity list to reset all entities. Extra tables are cleared and
their auto-increment key reset after the entities, without reindexing.`,
	Example: `  dbreset setup:db-data:reset
  dbreset setup:db-data:reset customer order --extra-table custom_log
  dbreset setup:db-data:reset product --dry-run`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := registry.Default()
		// Validate before connecting so a bad request never touches the database.
		plan, err := reset.Resolve(reg, args, splitList(flagExtraTables))
		if err != nil {
			return err
		}
		cfg, err := cfgpkg.Load()
		if err != nil {
			return err
		}
		ctx := context.Background()
		if flagTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, flagTimeout)
			defer cancel()
		}

		log := logrus.WithField("run_id", ulid.Make().String())
		out := cmd.OutOrStdout()
		sess, err := backend.Open(ctx, cfg, backend.Options{DryRun: flagDryRun, Out: out, Log: log})
		if err != nil {
			return err
		}
		defer sess.Close()

		log.WithFields(logrus.Fields{
			"entities":     plan.Entities,
			"extra_tables": plan.ExtraTables,
			"dry_run":      flagDryRun,
			"driver":       cfg.Database.Driver,
			"indexer":      cfg.Indexer.Backend,
		}).Info("reset starting")
		start := time.Now()
		if err := reset.New(reg, sess.Store, sess.Indexer, out).WithLogger(log).Execute(ctx, plan); err != nil {
			return err
		}
		log.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Info("reset done")
		return nil
	},
}

func init() {
	ResetCmd.Flags().StringArrayVar(&flagExtraTables, "extra-table", nil, "Space-separated list of tables to reset (repeatable)")
	ResetCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print statements and reindex actions without running them")
	ResetCmd.Flags().DurationVar(&flagTimeout, "timeout", 30*time.Minute, "Abort the run after this duration (0 disables)")
}

// splitList accepts repeated flags whose values may hold several
// space- or comma-separated names.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, strings.FieldsFunc(v, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})...)
	}
	return out
}
