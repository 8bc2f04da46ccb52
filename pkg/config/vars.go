package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "gnlineage"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gnlineage by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for resolution caches.
// Returns ~/.cache/gnlineage by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/gnlineage/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/gnlineage/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// LockFilePath returns the path of the lock file that keeps two
// annotation runs from writing the same caches.
func LockFilePath(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), AppName+".lock")
}
