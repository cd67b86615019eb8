package postgres

import (
	"context"

	"github.com/flarebyte/dbreset/internal/dao/dbutil"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MissingTables returns the physical names among tables that do not exist in
// the current schema.
func MissingTables(ctx context.Context, db *pgxpool.Pool, tables []string) ([]string, error) {
	rows, err := db.Query(ctx, `SELECT table_name FROM information_schema.tables
        WHERE table_schema = current_schema() AND table_type='BASE TABLE'`)
	if err != nil {
		return nil, dbutil.ErrWrap("postgres.list_tables", err)
	}
	defer rows.Close()
	var present []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		present = append(present, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return dbutil.Missing(tables, present), nil
}
