package backend

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/flarebyte/dbreset/internal/config"
	"github.com/flarebyte/dbreset/internal/indexer"
	"github.com/flarebyte/dbreset/internal/registry"
	"github.com/flarebyte/dbreset/internal/reset"
	"github.com/flarebyte/dbreset/internal/vault"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quiet() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestOpen_DryRunPostgres(t *testing.T) {
	cfg := config.Defaults()
	cfg.Database.Driver = config.DriverPostgres
	cfg.Indexer.Backend = config.BackendNone

	var out bytes.Buffer
	sess, err := Open(context.Background(), cfg, Options{DryRun: true, Out: &out, Log: quiet()})
	require.NoError(t, err)
	defer sess.Close()

	r := reset.New(registry.Default(), sess.Store, sess.Indexer, &out).WithLogger(quiet())
	require.NoError(t, r.Run(context.Background(), []string{"url_rewrite"}, nil))
	assert.Contains(t, out.String(), `DELETE FROM "url_rewrite";`)
	assert.Contains(t, out.String(), "Reset auto increment key from table: url_rewrite")
}

func TestOpen_DryRunMySQLWithPrefix(t *testing.T) {
	cfg := config.Defaults()
	cfg.Database.TablePrefix = "m2_"

	var out bytes.Buffer
	sess, err := Open(context.Background(), cfg, Options{DryRun: true, Out: &out, Log: quiet()})
	require.NoError(t, err)
	r := reset.New(registry.Default(), sess.Store, sess.Indexer, &out).WithLogger(quiet())
	require.NoError(t, r.Run(context.Background(), []string{"category"}, nil))

	assert.Contains(t, out.String(), "DELETE FROM `m2_catalog_category_entity` WHERE level > 1;")
	assert.Contains(t, out.String(), "indexer:reindex catalog_category_product (backend=magento)")
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	cfg := config.Defaults()
	cfg.Database.Driver = "sqlite"
	_, err := Open(context.Background(), cfg, Options{DryRun: true})
	require.Error(t, err)
}

func TestIndexer_Backends(t *testing.T) {
	cfg := config.Defaults()
	idx, err := Indexer(cfg, io.Discard, quiet())
	require.NoError(t, err)
	assert.IsType(t, &indexer.Magento{}, idx)

	cfg.Indexer.Backend = config.BackendOpenSearch
	idx, err = Indexer(cfg, io.Discard, quiet())
	require.NoError(t, err)
	assert.IsType(t, &indexer.OpenSearch{}, idx)

	cfg.Indexer.Backend = config.BackendNone
	idx, err = Indexer(cfg, io.Discard, quiet())
	require.NoError(t, err)
	assert.IsType(t, indexer.Noop{}, idx)

	cfg.Indexer.Backend = "solr"
	_, err = Indexer(cfg, io.Discard, quiet())
	require.Error(t, err)
}

// fakeSecrets serves Get from values, or fails with err when set.
type fakeSecrets struct {
	values map[string]string
	err    error
	gets   []string
}

func (f *fakeSecrets) Get(ctx context.Context, name string) ([]byte, error) {
	f.gets = append(f.gets, name)
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.values[name]
	if !ok {
		return nil, vault.ErrSecretNotFound
	}
	return []byte(v), nil
}

func (f *fakeSecrets) Set(ctx context.Context, name string, value []byte) error {
	return errors.New("read-only")
}

func (f *fakeSecrets) Unset(ctx context.Context, name string) error {
	return errors.New("read-only")
}

func (f *fakeSecrets) Has(ctx context.Context, name string) (bool, error) {
	_, ok := f.values[name]
	return ok, nil
}

func TestOpen_SecretStoreFailureStopsBeforeConnecting(t *testing.T) {
	cfg := config.Defaults()
	cfg.Database.PasswordSecret = "magento-db"
	locked := errors.New("keychain locked")
	secrets := &fakeSecrets{err: locked}

	_, err := Open(context.Background(), cfg, Options{Log: quiet(), Secrets: secrets})
	require.ErrorIs(t, err, locked)
	assert.Contains(t, err.Error(), `"magento-db"`)
	assert.Equal(t, []string{"magento-db"}, secrets.gets)
}

func TestResolvePassword(t *testing.T) {
	ctx := context.Background()
	secrets := &fakeSecrets{values: map[string]string{"magento-db": "from-vault"}}

	db := config.Defaults().Database
	db.Password = "literal"
	db.PasswordSecret = "magento-db"
	got, err := resolvePassword(ctx, db, secrets)
	require.NoError(t, err)
	assert.Equal(t, "literal", got.Password)
	assert.Empty(t, secrets.gets)

	db.Password = ""
	got, err = resolvePassword(ctx, db, secrets)
	require.NoError(t, err)
	assert.Equal(t, "from-vault", got.Password)

	db.PasswordSecret = "absent"
	_, err = resolvePassword(ctx, db, secrets)
	require.ErrorIs(t, err, vault.ErrSecretNotFound)
	assert.Contains(t, err.Error(), `"absent"`)

	plain := config.Defaults().Database
	got, err = resolvePassword(ctx, plain, nil)
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}
