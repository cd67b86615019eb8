package paths

import (
	"os"
	"path/filepath"
)

const envHome = "DBRESET_HOME_DIR"

// Home returns the base directory for dbreset configuration.
// Defaults to ~/.dbreset, can be overridden via DBRESET_HOME_DIR.
func Home() string {
	if v := os.Getenv(envHome); v != "" {
		return v
	}
	hd, err := os.UserHomeDir()
	if err != nil || hd == "" {
		return ".dbreset"
	}
	return filepath.Join(hd, ".dbreset")
}

func EnsureHome() (string, error) {
	h := Home()
	if err := os.MkdirAll(h, 0o755); err != nil {
		return "", err
	}
	return h, nil
}
