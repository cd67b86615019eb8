package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DBRESET_HOME_DIR", dir)
	if body != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	}
	return dir
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	writeConfig(t, "")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_MergesFileOverDefaults(t *testing.T) {
	writeConfig(t, `
database:
  driver: postgres
  name: shop
  table_prefix: m2_
indexer:
  backend: opensearch
opensearch:
  indices:
    catalog_product_price: [magento2_product_1]
`)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, DefaultPostgresPort, cfg.Database.Port)
	assert.Equal(t, "shop", cfg.Database.Name)
	assert.Equal(t, "magento", cfg.Database.User)
	assert.Equal(t, "m2_", cfg.Database.TablePrefix)
	assert.Equal(t, BackendOpenSearch, cfg.Indexer.Backend)
	assert.Equal(t, "php", cfg.Indexer.PHPBinary)
	assert.Equal(t, []string{"magento2_product_1"}, cfg.OpenSearch.Indices["catalog_product_price"])
}

func TestLoad_ParseError(t *testing.T) {
	writeConfig(t, "database: [unclosed")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	writeConfig(t, "database:\n  name: shop\n")
	t.Setenv("DBRESET_DB_NAME", "other")
	t.Setenv("DBRESET_DB_PORT", "3307")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "other", cfg.Database.Name)
	assert.Equal(t, 3307, cfg.Database.Port)
}

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestApplyEnv_DriverSwitchMovesDefaultPort(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, ApplyEnv(&cfg, envMap(map[string]string{"DBRESET_DB_DRIVER": "postgres"})))
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, DefaultPostgresPort, cfg.Database.Port)

	cfg = Defaults()
	require.NoError(t, ApplyEnv(&cfg, envMap(map[string]string{
		"DBRESET_DB_DRIVER": "postgres",
		"DBRESET_DB_PORT":   "6432",
	})))
	assert.Equal(t, 6432, cfg.Database.Port)
}

func TestSetDriver_KeepsCustomPort(t *testing.T) {
	db := Defaults().Database
	db.Port = 3307
	db.SetDriver(DriverPostgres)
	assert.Equal(t, 3307, db.Port)

	db = Defaults().Database
	db.SetDriver(DriverPostgres)
	db.SetDriver(DriverMySQL)
	assert.Equal(t, DefaultMySQLPort, db.Port)
}

func TestApplyEnv_BadPort(t *testing.T) {
	cfg := Defaults()
	err := ApplyEnv(&cfg, func(k string) (string, bool) {
		if k == "DBRESET_DB_PORT" {
			return "abc", true
		}
		return "", false
	})
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())

	bad := Defaults()
	bad.Database.Driver = "sqlite"
	assert.ErrorContains(t, bad.Validate(), "unsupported database driver")

	bad = Defaults()
	bad.Indexer.Backend = "elastic"
	assert.ErrorContains(t, bad.Validate(), "unsupported indexer backend")
}
