package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/flarebyte/dbreset/internal/paths"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"

	BackendMagento    = "magento"
	BackendOpenSearch = "opensearch"
	BackendNone       = "none"

	DefaultMySQLPort      = 3306
	DefaultPostgresPort   = 5432
	DefaultOpenSearchPort = 9200
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // mysql or postgres
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password,omitempty"`
	// PasswordSecret names a vault secret used when Password is empty.
	PasswordSecret string `yaml:"password_secret,omitempty"`
	TablePrefix    string `yaml:"table_prefix"`
	SSLMode        string `yaml:"sslmode,omitempty"` // postgres only
}

type IndexerConfig struct {
	Backend     string `yaml:"backend"` // magento, opensearch or none
	MagentoRoot string `yaml:"magento_root"`
	PHPBinary   string `yaml:"php_binary"`
}

type OpenSearchConfig struct {
	Host               string `yaml:"host"`
	Scheme             string `yaml:"scheme"` // http or https
	Port               int    `yaml:"port"`
	Username           string `yaml:"username,omitempty"`
	Password           string `yaml:"password,omitempty"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
	// Indices maps an indexer id to the OpenSearch indices it feeds.
	Indices map[string][]string `yaml:"indices,omitempty"`
}

type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	Indexer    IndexerConfig    `yaml:"indexer"`
	OpenSearch OpenSearchConfig `yaml:"opensearch"`
}

// Defaults returns the configuration used when no file or environment overrides exist.
func Defaults() Config {
	return Config{
		Database: DatabaseConfig{
			Driver: DriverMySQL,
			Host:   "127.0.0.1",
			Port:   DefaultMySQLPort,
			Name:   "magento",
			User:   "magento",
		},
		Indexer:    IndexerConfig{Backend: BackendMagento, MagentoRoot: ".", PHPBinary: "php"},
		OpenSearch: OpenSearchConfig{Host: "127.0.0.1", Scheme: "http", Port: DefaultOpenSearchPort},
	}
}

// Path returns the expected path to the config.yaml file.
func Path() string {
	return filepath.Join(paths.Home(), "config.yaml")
}

// Load reads config.yaml if it exists, then applies environment overrides.
// A .env file in the working directory is loaded first when present.
// Missing config file is not an error; defaults are returned.
func Load() (Config, error) {
	_ = godotenv.Load()
	cfg, err := LoadFile(Path())
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadFile merges the YAML file at p over the defaults.
func LoadFile(p string) (Config, error) {
	cfg := Defaults()
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	var fileCfg Config
	if err := yaml.Unmarshal(b, &fileCfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	merge(&cfg, fileCfg)
	return cfg, nil
}

// Merge: override defaults with provided values if non-zero
func merge(cfg *Config, f Config) {
	if f.Database.Driver != "" {
		cfg.Database.SetDriver(f.Database.Driver)
	}
	if f.Database.Host != "" {
		cfg.Database.Host = f.Database.Host
	}
	if f.Database.Port != 0 {
		cfg.Database.Port = f.Database.Port
	}
	if f.Database.Name != "" {
		cfg.Database.Name = f.Database.Name
	}
	if f.Database.User != "" {
		cfg.Database.User = f.Database.User
	}
	if f.Database.Password != "" {
		cfg.Database.Password = f.Database.Password
	}
	if f.Database.PasswordSecret != "" {
		cfg.Database.PasswordSecret = f.Database.PasswordSecret
	}
	if f.Database.TablePrefix != "" {
		cfg.Database.TablePrefix = f.Database.TablePrefix
	}
	if f.Database.SSLMode != "" {
		cfg.Database.SSLMode = f.Database.SSLMode
	}
	if f.Indexer.Backend != "" {
		cfg.Indexer.Backend = f.Indexer.Backend
	}
	if f.Indexer.MagentoRoot != "" {
		cfg.Indexer.MagentoRoot = f.Indexer.MagentoRoot
	}
	if f.Indexer.PHPBinary != "" {
		cfg.Indexer.PHPBinary = f.Indexer.PHPBinary
	}
	if f.OpenSearch.Host != "" {
		cfg.OpenSearch.Host = f.OpenSearch.Host
	}
	if f.OpenSearch.Scheme != "" {
		cfg.OpenSearch.Scheme = f.OpenSearch.Scheme
	}
	if f.OpenSearch.Port != 0 {
		cfg.OpenSearch.Port = f.OpenSearch.Port
	}
	if f.OpenSearch.Username != "" {
		cfg.OpenSearch.Username = f.OpenSearch.Username
	}
	if f.OpenSearch.Password != "" {
		cfg.OpenSearch.Password = f.OpenSearch.Password
	}
	if f.OpenSearch.InsecureSkipVerify {
		cfg.OpenSearch.InsecureSkipVerify = true
	}
	if len(f.OpenSearch.Indices) > 0 {
		cfg.OpenSearch.Indices = f.OpenSearch.Indices
	}
}

// DefaultPort returns the standard port for driver, or 0 when unknown.
func DefaultPort(driver string) int {
	switch strings.ToLower(driver) {
	case DriverMySQL:
		return DefaultMySQLPort
	case DriverPostgres:
		return DefaultPostgresPort
	}
	return 0
}

// SetDriver switches the driver. A port left at the previous driver's
// default (or unset) moves to the new driver's default.
func (d *DatabaseConfig) SetDriver(driver string) {
	if d.Port == 0 || d.Port == DefaultPort(d.Driver) {
		if p := DefaultPort(driver); p != 0 {
			d.Port = p
		}
	}
	d.Driver = driver
}

// ApplyEnv overrides cfg with DBRESET_* variables found through lookup.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	if v, ok := lookup("DBRESET_DB_DRIVER"); ok && v != "" {
		cfg.Database.SetDriver(v)
	}
	str("DBRESET_DB_HOST", &cfg.Database.Host)
	str("DBRESET_DB_NAME", &cfg.Database.Name)
	str("DBRESET_DB_USER", &cfg.Database.User)
	str("DBRESET_DB_PASSWORD", &cfg.Database.Password)
	str("DBRESET_DB_TABLE_PREFIX", &cfg.Database.TablePrefix)
	str("DBRESET_INDEXER_BACKEND", &cfg.Indexer.Backend)
	str("DBRESET_MAGENTO_ROOT", &cfg.Indexer.MagentoRoot)
	if v, ok := lookup("DBRESET_DB_PORT"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DBRESET_DB_PORT: %w", err)
		}
		cfg.Database.Port = n
	}
	return nil
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	switch strings.ToLower(c.Database.Driver) {
	case DriverMySQL, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q (want mysql or postgres)", c.Database.Driver)
	}
	switch strings.ToLower(c.Indexer.Backend) {
	case BackendMagento, BackendOpenSearch, BackendNone:
	default:
		return fmt.Errorf("unsupported indexer backend %q (want magento, opensearch or none)", c.Indexer.Backend)
	}
	if c.Database.Port <= 0 {
		return fmt.Errorf("invalid database port %d", c.Database.Port)
	}
	return nil
}
