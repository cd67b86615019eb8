// Package reset empties registered entities: it deletes their rows, restarts
// their auto-increment counters and rebuilds their indexers.
//
// Work runs strictly in sequence and stops at the first error. Nothing is
// wrapped in a transaction, so entities finished before a failure stay reset.
package reset

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/flarebyte/dbreset/internal/dao/dbutil"
	"github.com/flarebyte/dbreset/internal/registry"
	"github.com/sirupsen/logrus"
)

// RowStore is the database collaborator. Implementations resolve logical
// table names to physical ones.
type RowStore interface {
	Delete(ctx context.Context, table, condition string) error
	ResetAutoIncrement(ctx context.Context, table string) error
}

// Indexer rebuilds one indexer fully and returns once the rebuild is done.
type Indexer interface {
	Reindex(ctx context.Context, id string) error
}

// Plan is a validated reset request.
type Plan struct {
	Entities    []string
	ExtraTables []string
}

// Resolve validates a request against reg. Names are trimmed and empty ones
// dropped; no names means every entity. Duplicates are kept.
func Resolve(reg *registry.Registry, requested, extraTables []string) (Plan, error) {
	entities := clean(requested)
	extra := clean(extraTables)

	ierr := &InvalidArgumentError{}
	if len(entities) == 0 {
		entities = reg.Names()
	} else {
		for _, e := range entities {
			if !reg.Has(e) && !contains(ierr.Unsupported, e) {
				ierr.Unsupported = append(ierr.Unsupported, e)
			}
		}
	}
	for _, t := range extra {
		if !dbutil.ValidIdent(t) {
			ierr.InvalidTables = append(ierr.InvalidTables, t)
		}
	}
	if len(ierr.Unsupported) > 0 || len(ierr.InvalidTables) > 0 {
		ierr.Supported = reg.Names()
		return Plan{}, ierr
	}
	return Plan{Entities: entities, ExtraTables: extra}, nil
}

// Resetter runs reset plans against a row store and an indexer.
type Resetter struct {
	reg     *registry.Registry
	store   RowStore
	indexer Indexer
	out     io.Writer
	log     logrus.FieldLogger
}

// New returns a Resetter writing progress lines to out.
func New(reg *registry.Registry, store RowStore, indexer Indexer, out io.Writer) *Resetter {
	if out == nil {
		out = io.Discard
	}
	return &Resetter{reg: reg, store: store, indexer: indexer, out: out, log: logrus.StandardLogger()}
}

// WithLogger sets the diagnostic logger.
func (r *Resetter) WithLogger(l logrus.FieldLogger) *Resetter {
	r.log = l
	return r
}

// Run resolves the request and executes it.
func (r *Resetter) Run(ctx context.Context, requested, extraTables []string) error {
	plan, err := Resolve(r.reg, requested, extraTables)
	if err != nil {
		return err
	}
	return r.Execute(ctx, plan)
}

// Execute resets each planned entity in order, then clears the extra tables.
func (r *Resetter) Execute(ctx context.Context, plan Plan) error {
	r.printf("Reset entities:")
	for _, name := range plan.Entities {
		rc, err := r.reg.Recipe(name)
		if err != nil {
			return err
		}
		log := r.log.WithField("entity", name)
		log.Debug("resetting entity")
		if err := r.deleteTablesData(ctx, name, rc.Delete); err != nil {
			return err
		}
		if err := r.resetAutoIncrement(ctx, name, rc.ResetAutoIncrement); err != nil {
			return err
		}
		if err := r.reindex(ctx, name, rc.Indexers); err != nil {
			return err
		}
		log.Info("entity reset")
	}

	if len(plan.ExtraTables) == 0 {
		return nil
	}
	specs := make([]registry.DeleteSpec, 0, len(plan.ExtraTables))
	for _, t := range plan.ExtraTables {
		specs = append(specs, registry.DeleteSpec{Table: t})
	}
	if err := r.deleteTablesData(ctx, "", specs); err != nil {
		return err
	}
	if err := r.resetAutoIncrement(ctx, "", plan.ExtraTables); err != nil {
		return err
	}
	r.log.WithField("tables", len(plan.ExtraTables)).Info("extra tables reset")
	return nil
}

func (r *Resetter) deleteTablesData(ctx context.Context, entity string, specs []registry.DeleteSpec) error {
	for _, spec := range specs {
		r.printf("Delete data from table: %s", spec.Table)
		if err := r.store.Delete(ctx, spec.Table, spec.Condition); err != nil {
			return dbutil.ErrWrap("reset.delete", err, scope(entity, "table="+spec.Table)...)
		}
	}
	return nil
}

func (r *Resetter) resetAutoIncrement(ctx context.Context, entity string, tables []string) error {
	for _, t := range tables {
		r.printf("Reset auto increment key from table: %s", t)
		if err := r.store.ResetAutoIncrement(ctx, t); err != nil {
			return dbutil.ErrWrap("reset.auto_increment", err, scope(entity, "table="+t)...)
		}
	}
	return nil
}

func (r *Resetter) reindex(ctx context.Context, entity string, ids []string) error {
	for _, id := range ids {
		r.printf("Reindex: %s", id)
		if err := r.indexer.Reindex(ctx, id); err != nil {
			return dbutil.ErrWrap("reset.reindex", err, scope(entity, "indexer="+id)...)
		}
	}
	return nil
}

func (r *Resetter) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

func scope(entity, part string) []string {
	if entity == "" {
		return []string{"extra", part}
	}
	return []string{"entity=" + entity, part}
}

func clean(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}
