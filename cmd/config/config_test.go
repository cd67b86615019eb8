package configcmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cfgpkg "github.com/flarebyte/dbreset/internal/config"
	"github.com/flarebyte/dbreset/internal/registry"
	"github.com/spf13/pflag"
)

func execConfig(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	// Package-level commands keep flag state between executions.
	initCmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	var out, errOut bytes.Buffer
	ConfigCmd.SetOut(&out)
	ConfigCmd.SetErr(&errOut)
	ConfigCmd.SetArgs(args)
	err := ConfigCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestInit_WritesConfigAndRefusesOverwrite(t *testing.T) {
	home := t.TempDir()
	t.Setenv("DBRESET_HOME_DIR", home)

	_, _, err := execConfig(t, "init", "--db-driver", "postgres", "--db-port", "5432", "--table-prefix", "m2_", "--indexer-backend", "none")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(home, "config.yaml"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for _, want := range []string{"driver: postgres", "table_prefix: m2_", "backend: none"} {
		if !strings.Contains(string(b), want) {
			t.Fatalf("expected %q in config:\n%s", want, b)
		}
	}

	_, _, err = execConfig(t, "init")
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected refusal, got %v", err)
	}
}

func TestInit_PostgresDriverUsesPostgresPort(t *testing.T) {
	home := t.TempDir()
	t.Setenv("DBRESET_HOME_DIR", home)

	_, _, err := execConfig(t, "init", "--overwrite", "--db-driver", "postgres")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	cfg, err := cfgpkg.LoadFile(filepath.Join(home, "config.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Port != cfgpkg.DefaultPostgresPort {
		t.Fatalf("port: got %d, want %d", cfg.Database.Port, cfgpkg.DefaultPostgresPort)
	}
}

func TestPrint_MasksPassword(t *testing.T) {
	home := t.TempDir()
	t.Setenv("DBRESET_HOME_DIR", home)
	if err := os.WriteFile(filepath.Join(home, "config.yaml"), []byte("database:\n  password: hunter2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	out, _, err := execConfig(t, "print")
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if strings.Contains(out, "hunter2") || !strings.Contains(out, "********") {
		t.Fatalf("password not masked:\n%s", out)
	}
}

func TestRegistryTables_Unique(t *testing.T) {
	tables := registryTables(registry.Default())
	seen := map[string]bool{}
	for _, tbl := range tables {
		if seen[tbl] {
			t.Fatalf("duplicate table %s", tbl)
		}
		seen[tbl] = true
	}
	if !seen["sales_order_grid"] || !seen["catalog_category_product"] {
		t.Fatalf("expected delete and reset tables to be listed: %v", tables)
	}
}
