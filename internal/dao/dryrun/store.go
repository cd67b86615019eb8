// Package dryrun prints the statements and indexer actions a reset would
// perform without executing them.
package dryrun

import (
	"context"
	"fmt"
	"io"
)

// Renderer builds dialect-specific statements.
type Renderer interface {
	DeleteSQL(table, condition string) (string, error)
	ResetAutoIncrementSQL(table string) (string, error)
}

// Store writes each statement to Out, indented under the progress line.
type Store struct {
	r   Renderer
	out io.Writer
}

func NewStore(r Renderer, out io.Writer) *Store {
	return &Store{r: r, out: out}
}

func (s *Store) Delete(ctx context.Context, table, condition string) error {
	q, err := s.r.DeleteSQL(table, condition)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "  %s;\n", q)
	return nil
}

func (s *Store) ResetAutoIncrement(ctx context.Context, table string) error {
	q, err := s.r.ResetAutoIncrementSQL(table)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "  %s;\n", q)
	return nil
}

// Indexer writes the reindex action it would run on the named backend.
type Indexer struct {
	backend string
	out     io.Writer
}

func NewIndexer(backend string, out io.Writer) *Indexer {
	return &Indexer{backend: backend, out: out}
}

func (i *Indexer) Reindex(ctx context.Context, id string) error {
	fmt.Fprintf(i.out, "  indexer:reindex %s (backend=%s)\n", id, i.backend)
	return nil
}
