package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetShowHome returns the show home directory
// Priority order:
//  1. SHOW_HOME environment variable (if set)
//  2. $XDG_CONFIG_HOME/show
//  3. ~/.config/show
//
// The directory is not created; a missing home simply means defaults.
func GetShowHome() (string, error) {
	if home := os.Getenv("SHOW_HOME"); home != "" {
		return home, nil
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "show"), nil
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get user home directory: %w", err)
	}
	return filepath.Join(userHome, ".config", "show"), nil
}

// GetCompletionsDir returns the directory generated completion scripts are
// installed into
// The directory is created if it doesn't exist
func GetCompletionsDir() (string, error) {
	home, err := GetShowHome()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(home, "completions")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create completions directory: %w", err)
	}
	return dir, nil
}
