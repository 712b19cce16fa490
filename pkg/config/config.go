// Package config resolves the options of one vizex run. Built-in defaults
// are overridden by the preferences file, which is overridden by flags.
// The preferences file lives under the XDG config directory.
package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "vizex"

// Dir returns the vizex configuration directory.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, appName)
}

// PrefsPath returns the location of the preferences file.
func PrefsPath() string {
	return filepath.Join(Dir(), "config.json")
}
