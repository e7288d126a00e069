// Package xdg locates the tflite2c user config directory.
package xdg

import (
	"os"
	"path/filepath"
)

const appName = "tflite2c"

// ConfigHome returns $XDG_CONFIG_HOME, or ~/.config when unset.
func ConfigHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

// ConfigDir returns ConfigHome()/tflite2c.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), appName)
}

// ConfigFile returns the user-level config file consulted when no
// project config exists.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
