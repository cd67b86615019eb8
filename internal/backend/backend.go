// Package backend turns a loaded configuration into the row store and
// indexer a reset runs against.
package backend

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/flarebyte/dbreset/internal/config"
	"github.com/flarebyte/dbreset/internal/dao/dryrun"
	"github.com/flarebyte/dbreset/internal/dao/mysql"
	osdao "github.com/flarebyte/dbreset/internal/dao/opensearch"
	"github.com/flarebyte/dbreset/internal/dao/postgres"
	"github.com/flarebyte/dbreset/internal/indexer"
	"github.com/flarebyte/dbreset/internal/reset"
	"github.com/flarebyte/dbreset/internal/vault"
	"github.com/sirupsen/logrus"
)

type Options struct {
	// DryRun prints statements and indexer actions instead of running them.
	DryRun bool
	// Out receives dry-run output and indexer process output.
	Out io.Writer
	Log logrus.FieldLogger
	// Secrets resolves database.password_secret; nil uses the platform store.
	Secrets vault.SecretStore
}

// Session holds open collaborators. Close releases the database connection.
type Session struct {
	Store   reset.RowStore
	Indexer reset.Indexer
	// MissingTables reports which of the given logical tables do not exist.
	MissingTables func(ctx context.Context, tables []string) ([]string, error)
	closers       []func()
}

func (s *Session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

// Open connects to the configured database and builds the indexer backend.
// In dry-run mode nothing is opened.
func Open(ctx context.Context, cfg config.Config, opts Options) (*Session, error) {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	driver := strings.ToLower(cfg.Database.Driver)
	backendName := strings.ToLower(cfg.Indexer.Backend)
	prefix := cfg.Database.TablePrefix

	if opts.DryRun {
		r, err := Renderer(driver, prefix)
		if err != nil {
			return nil, err
		}
		return &Session{
			Store:   dryrun.NewStore(r, opts.Out),
			Indexer: dryrun.NewIndexer(backendName, opts.Out),
		}, nil
	}

	dbcfg, err := resolvePassword(ctx, cfg.Database, opts.Secrets)
	if err != nil {
		return nil, err
	}

	sess := &Session{}
	log := opts.Log.WithFields(logrus.Fields{"driver": driver, "host": dbcfg.Host, "db": dbcfg.Name})
	switch driver {
	case config.DriverMySQL:
		db, err := mysql.Open(ctx, dbcfg)
		if err != nil {
			return nil, fmt.Errorf("connect mysql: %w", err)
		}
		sess.closers = append(sess.closers, func() { _ = db.Close() })
		st := mysql.NewStore(db, prefix)
		sess.Store = st
		sess.MissingTables = func(ctx context.Context, tables []string) ([]string, error) {
			return mysql.MissingTables(ctx, db, physical(st.TableName, tables))
		}
	case config.DriverPostgres:
		pool, err := postgres.Open(ctx, dbcfg)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		sess.closers = append(sess.closers, pool.Close)
		st := postgres.NewStore(pool, prefix)
		sess.Store = st
		sess.MissingTables = func(ctx context.Context, tables []string) ([]string, error) {
			return postgres.MissingTables(ctx, pool, physical(st.TableName, tables))
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	log.Debug("database connected")

	idx, err := Indexer(cfg, opts.Out, opts.Log)
	if err != nil {
		sess.Close()
		return nil, err
	}
	sess.Indexer = idx
	return sess, nil
}

// resolvePassword fills Password from the vault when only PasswordSecret is
// set. A literal password wins and the vault is never opened.
func resolvePassword(ctx context.Context, dbcfg config.DatabaseConfig, secrets vault.SecretStore) (config.DatabaseConfig, error) {
	if dbcfg.Password != "" || dbcfg.PasswordSecret == "" {
		return dbcfg, nil
	}
	if secrets == nil {
		s, err := vault.New()
		if err != nil {
			return dbcfg, fmt.Errorf("vault secret %q: %w", dbcfg.PasswordSecret, err)
		}
		secrets = s
	}
	pw, err := vault.Resolve(ctx, secrets, dbcfg.PasswordSecret)
	if err != nil {
		return dbcfg, err
	}
	dbcfg.Password = pw
	return dbcfg, nil
}

// Renderer returns the statement renderer for driver.
func Renderer(driver, prefix string) (dryrun.Renderer, error) {
	switch strings.ToLower(driver) {
	case config.DriverMySQL:
		return mysql.Dialect{Prefix: prefix}, nil
	case config.DriverPostgres:
		return postgres.Dialect{Prefix: prefix}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Indexer builds the configured indexer backend.
func Indexer(cfg config.Config, out io.Writer, log logrus.FieldLogger) (reset.Indexer, error) {
	switch strings.ToLower(cfg.Indexer.Backend) {
	case config.BackendMagento:
		return &indexer.Magento{Root: cfg.Indexer.MagentoRoot, PHP: cfg.Indexer.PHPBinary, Out: out, Log: log}, nil
	case config.BackendOpenSearch:
		client := osdao.NewClientFromConfig(cfg.OpenSearch)
		return indexer.NewOpenSearch(client, cfg.OpenSearch.Indices, log), nil
	case config.BackendNone:
		return indexer.Noop{Log: log}, nil
	default:
		return nil, fmt.Errorf("unsupported indexer backend %q", cfg.Indexer.Backend)
	}
}

func physical(resolve func(string) string, tables []string) []string {
	out := make([]string, 0, len(tables))
	for _, t := range tables {
		out = append(out, resolve(t))
	}
	return out
}
