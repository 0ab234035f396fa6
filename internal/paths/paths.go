package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultStateDir returns the default tdo state directory.
func DefaultStateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	return filepath.Join(home, ".local", "state", "tdo"), nil
}

// GlobalConfigPath returns the path of the user-level config file.
func GlobalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	return filepath.Join(home, ".config", "tdo", "config.toml"), nil
}
