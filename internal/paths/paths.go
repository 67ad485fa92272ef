// Package paths resolves the on-disk locations gptty reads and writes:
// the config file, the log file, and the SQLite database. Debug builds
// resolve everything under a fixed subdirectory of the module root
// instead of the platform XDG dirs, so a checkout never touches a
// developer's real config/data directories.
package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
)

const appName = "gptty"

var debugAssertions = false

// ConfigDir returns the directory holding config.toml.
func ConfigDir() (string, error) {
	if debugAssertions {
		return debugSubdir("config")
	}
	dir := filepath.Join(xdg.ConfigHome, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// DataDir returns the directory holding gpt.db.
func DataDir() (string, error) {
	if debugAssertions {
		return debugSubdir("data")
	}
	dir := filepath.Join(xdg.DataHome, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// ConfigFile returns the path to config.toml.
func ConfigFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DatabaseFile returns the path to gpt.db.
func DatabaseFile() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "gpt.db"), nil
}

// LogFile returns the path to gptty.log, which sits next to the database.
func LogFile() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "gptty.log"), nil
}

func debugSubdir(leaf string) (string, error) {
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", os.ErrNotExist
	}
	// this file sits at <root>/internal/paths/paths.go.
	root := filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
	dir := filepath.Join(root, "test_assets", leaf)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
