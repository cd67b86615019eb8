package configcmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/flarebyte/dbreset/internal/config"
	"github.com/flarebyte/dbreset/internal/paths"
	"github.com/flarebyte/dbreset/internal/secretinput"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	flagOverwrite bool
	flagDryRun    bool
	// Database
	flagDBDriver         string
	flagDBHost           string
	flagDBPort           int
	flagDBName           string
	flagDBUser           string
	flagDBPasswordPrompt bool
	flagDBPasswordSecret string
	flagDBTablePrefix    string
	// Indexer
	flagIndexerBackend string
	flagMagentoRoot    string
	flagPHPBinary      string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or update config.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := paths.EnsureHome(); err != nil {
			return err
		}
		path := cfgpkg.Path()
		if !flagOverwrite && !flagDryRun {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config already exists at %s (use --overwrite to replace)", path)
			}
		}

		// Start from existing config (or defaults if missing) to preserve secrets
		cfg, _ := cfgpkg.LoadFile(path)

		if cmd.Flags().Changed("db-driver") {
			cfg.Database.SetDriver(flagDBDriver)
		}
		if cmd.Flags().Changed("db-host") {
			cfg.Database.Host = flagDBHost
		}
		if cmd.Flags().Changed("db-port") {
			cfg.Database.Port = flagDBPort
		}
		if cmd.Flags().Changed("db-name") {
			cfg.Database.Name = flagDBName
		}
		if cmd.Flags().Changed("db-user") {
			cfg.Database.User = flagDBUser
		}
		if cmd.Flags().Changed("db-password-secret") {
			cfg.Database.PasswordSecret = flagDBPasswordSecret
		}
		if cmd.Flags().Changed("table-prefix") {
			cfg.Database.TablePrefix = flagDBTablePrefix
		}
		if cmd.Flags().Changed("indexer-backend") {
			cfg.Indexer.Backend = flagIndexerBackend
		}
		if cmd.Flags().Changed("magento-root") {
			cfg.Indexer.MagentoRoot = flagMagentoRoot
		}
		if cmd.Flags().Changed("php-binary") {
			cfg.Indexer.PHPBinary = flagPHPBinary
		}
		if flagDBPasswordPrompt {
			pw, err := secretinput.Read("Database password: ")
			if err != nil {
				return err
			}
			cfg.Database.Password = pw
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		b, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		if flagDryRun {
			out := cmd.OutOrStdout()
			out.Write(b)
			if len(b) == 0 || b[len(b)-1] != '\n' {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "dry-run: not writing %s\n", path)
			return nil
		}
		// May hold a password
		if err := os.WriteFile(path, b, 0o600); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote config to %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&flagOverwrite, "overwrite", false, "Overwrite existing config.yaml if present")
	initCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print merged config to stdout without writing")

	initCmd.Flags().StringVar(&flagDBDriver, "db-driver", cfgpkg.DriverMySQL, "Database driver: mysql or postgres")
	initCmd.Flags().StringVar(&flagDBHost, "db-host", "127.0.0.1", "Database host")
	initCmd.Flags().IntVar(&flagDBPort, "db-port", cfgpkg.DefaultMySQLPort, "Database port")
	initCmd.Flags().StringVar(&flagDBName, "db-name", "magento", "Database name")
	initCmd.Flags().StringVar(&flagDBUser, "db-user", "magento", "Database user")
	initCmd.Flags().BoolVar(&flagDBPasswordPrompt, "db-password", false, "Prompt for the database password and store it in config.yaml")
	initCmd.Flags().StringVar(&flagDBPasswordSecret, "db-password-secret", "", "Vault secret holding the database password")
	initCmd.Flags().StringVar(&flagDBTablePrefix, "table-prefix", "", "Magento table prefix")

	initCmd.Flags().StringVar(&flagIndexerBackend, "indexer-backend", cfgpkg.BackendMagento, "Indexer backend: magento, opensearch or none")
	initCmd.Flags().StringVar(&flagMagentoRoot, "magento-root", ".", "Magento installation directory (for bin/magento)")
	initCmd.Flags().StringVar(&flagPHPBinary, "php-binary", "php", "PHP binary used to run bin/magento")
}
