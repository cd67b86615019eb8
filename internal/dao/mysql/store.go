package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/flarebyte/dbreset/internal/config"
	"github.com/flarebyte/dbreset/internal/dao/dbutil"
	driver "github.com/go-sql-driver/mysql"
)

// Open returns a sql.DB connected to the configured MySQL database.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	dc := driver.NewConfig()
	dc.User = cfg.User
	dc.Passwd = cfg.Password
	dc.Net = "tcp"
	dc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	dc.DBName = cfg.Name
	dc.ParseTime = true
	conn, err := driver.NewConnector(dc)
	if err != nil {
		return nil, err
	}
	db := sql.OpenDB(conn)
	// Statements run strictly one after another.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(30 * time.Minute)
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctxPing); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Dialect renders MySQL statements against prefixed table names.
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
	return "`" + name + "`", nil
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

// ResetAutoIncrementSQL builds the statement restarting table's counter at 1.
func (d Dialect) ResetAutoIncrementSQL(table string) (string, error) {
	q, err := d.quote(table)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ALTER TABLE %s AUTO_INCREMENT = 1", q), nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Store executes reset statements against MySQL. Each statement runs on its own.
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
	_, err = s.db.ExecContext(ctx, q)
	return dbutil.ErrWrap("mysql.delete", err, "table="+s.TableName(table))
}

func (s *Store) ResetAutoIncrement(ctx context.Context, table string) error {
	q, err := s.ResetAutoIncrementSQL(table)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, q)
	return dbutil.ErrWrap("mysql.reset_auto_increment", err, "table="+s.TableName(table))
}
