package globalconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MrSnakeDoc/mcversion/internal/utils/pathutils"
)

const (
	configDir  = ".config/mcversion"
	configFile = "config.yml"
	stateDir   = "mcversion"
)

func GetConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mcversion"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

// DefaultConfigPath is where the YAML config lives when --config is not set.
func DefaultConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// GetStateDir returns $XDG_STATE_HOME/mcversion (or ~/.local/state/mcversion).
func GetStateDir() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, stateDir), nil
}

// ResolveStatePath anchors a relative state file name under the state dir.
func ResolveStatePath(name string) (string, error) {
	name, err := pathutils.ExpandHome(name)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(name) {
		return name, nil
	}
	dir, err := GetStateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
