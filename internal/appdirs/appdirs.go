// Package appdirs resolves where the quick-findr app keeps its files.
package appdirs

import (
	"os"
	"path/filepath"
)

const (
	appDirName        = "quick-findr"
	favoritesFileName = "favorites.json"

	// EnvConfigDir overrides the platform config directory.
	EnvConfigDir = "QUICKFINDR_CONFIG_DIR"
)

// ConfigBaseDir returns the directory the app's own directory lives in:
// %APPDATA% on Windows, ~/Library/Application Support on macOS and
// $XDG_CONFIG_HOME or ~/.config elsewhere.
func ConfigBaseDir() (string, error) {
	if override := os.Getenv(EnvConfigDir); override != "" {
		return override, nil
	}
	return os.UserConfigDir()
}

// AppDir returns the app's config directory.
func AppDir() (string, error) {
	base, err := ConfigBaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appDirName), nil
}

// FavoritesPath returns the location of favorites.json.
func FavoritesPath() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, favoritesFileName), nil
}
