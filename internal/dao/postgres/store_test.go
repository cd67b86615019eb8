package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

type fakeExec struct {
	queries []string
	err     error
}

func (f *fakeExec) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.queries = append(f.queries, sql)
	return pgconn.CommandTag{}, f.err
}

func TestStore_Delete(t *testing.T) {
	fx := &fakeExec{}
	s := NewStore(fx, "")
	if err := s.Delete(context.Background(), "catalog_category_entity", "level > 1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(context.Background(), "quote", ""); err != nil {
		t.Fatalf("delete: %v", err)
	}
	want := []string{
		`DELETE FROM "catalog_category_entity" WHERE level > 1`,
		`DELETE FROM "quote"`,
	}
	if len(fx.queries) != len(want) {
		t.Fatalf("got %d queries, want %d", len(fx.queries), len(want))
	}
	for i := range want {
		if fx.queries[i] != want[i] {
			t.Fatalf("query %d: got %q want %q", i, fx.queries[i], want[i])
		}
	}
}

func TestStore_ResetAutoIncrementUsesOwnedSequences(t *testing.T) {
	fx := &fakeExec{}
	s := NewStore(fx, "m2_")
	if err := s.ResetAutoIncrement(context.Background(), "sales_order"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	q := fx.queries[0]
	if !strings.Contains(q, `pg_get_serial_sequence('"m2_sales_order"', a.attname)`) {
		t.Fatalf("unexpected statement: %s", q)
	}
	if !strings.Contains(q, `'"m2_sales_order"'::regclass`) {
		t.Fatalf("unexpected statement: %s", q)
	}
	if !strings.HasPrefix(q, "SELECT setval(s.seq, 1, false)") {
		t.Fatalf("unexpected statement: %s", q)
	}
}

func TestStore_ErrorsWrapped(t *testing.T) {
	boom := errors.New("relation does not exist")
	s := NewStore(&fakeExec{err: boom}, "")
	err := s.Delete(context.Background(), "missing", "")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if _, err := s.DeleteSQL("bad name", ""); err == nil {
		t.Fatal("expected invalid identifier error")
	}
}
