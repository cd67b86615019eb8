package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/flarebyte/dbreset/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DSN renders cfg as a keyword/value connection string with every value quoted.
func DSN(cfg config.DatabaseConfig) string {
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dsnValue(cfg.Host), cfg.Port, dsnValue(cfg.User), dsnValue(cfg.Password), dsnValue(cfg.Name), dsnValue(sslmode))
}

// dsnValue quotes v, escaping backslashes and single quotes.
func dsnValue(v string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}

// Open returns a pgx pool using the provided database config.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(DSN(cfg))
	if err != nil {
		return nil, err
	}
	// Statements run strictly one after another.
	pcfg.MaxConns = 1
	pcfg.MaxConnLifetime = 30 * time.Minute
	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, err
	}
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
