package mysql

import (
	"context"
	"database/sql"

	"github.com/flarebyte/dbreset/internal/dao/dbutil"
)

// MissingTables returns the physical names among tables that do not exist in
// the connected schema.
func MissingTables(ctx context.Context, db *sql.DB, tables []string) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE()`)
	if err != nil {
		return nil, dbutil.ErrWrap("mysql.list_tables", err)
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
