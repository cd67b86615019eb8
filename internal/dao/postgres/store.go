package postgres

import (
	"context"
	"fmt"

	"github.com/flarebyte/dbreset/internal/dao/dbutil"
	"github.com/jackc/pgx/v5/pgconn"
)

// Dialect renders PostgreSQL statements against prefixed table names.
type Dialect struct {
	Prefix string
}

// TableName resolves a logical table name to its physical name.
func (d Dialect) TableName(table string) string {
	return d.Prefix + table
}

func (d Dialect) quote(table string) (string, error) {
	name, err := dbutil.SafeIdent(d.TableName(table))
	if err != nil {
		return "", err
	}
	return `"` + name + `"`, nil
}

// DeleteSQL builds a DELETE for table, filtered by condition when non-empty.
func (d Dialect) DeleteSQL(table, condition string) (string, error) {
	q, err := d.quote(table)
	if err != nil {
		return "", err
	}
	if condition == "" {
		return "DELETE FROM " + q, nil
	}
	return fmt.Sprintf("DELETE FROM %s WHERE %s", q, condition), nil
}

// ResetAutoIncrementSQL restarts every sequence owned by a serial or identity
// column of table. Tables without such columns are left untouched.
func (d Dialect) ResetAutoIncrementSQL(table string) (string, error) {
	q, err := d.quote(table)
	if err != nil {
		return "", err
	}
	lit := dbutil.QuoteLiteral(q)
	return fmt.Sprintf(`SELECT setval(s.seq, 1, false) FROM (
    SELECT pg_get_serial_sequence(%s, a.attname) AS seq
    FROM pg_attribute a
    WHERE a.attrelid = %s::regclass AND a.attnum > 0 AND NOT a.attisdropped
) s WHERE s.seq IS NOT NULL`, lit, lit), nil
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store executes reset statements against PostgreSQL. Each statement runs on its own.
type Store struct {
	Dialect
	db execer
}

func NewStore(db execer, prefix string) *Store {
	return &Store{Dialect: Dialect{Prefix: prefix}, db: db}
}

func (s *Store) Delete(ctx context.Context, table, condition string) error {
	q, err := s.DeleteSQL(table, condition)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, q)
	return dbutil.ErrWrap("postgres.delete", err, "table="+s.TableName(table))
}

func (s *Store) ResetAutoIncrement(ctx context.Context, table string) error {
	q, err := s.ResetAutoIncrementSQL(table)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, q)
	return dbutil.ErrWrap("postgres.reset_auto_increment", err, "table="+s.TableName(table))
}
