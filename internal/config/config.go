package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultLibraryFile is used when nothing else names the catalog file.
	DefaultLibraryFile = "library.txt"
	// DefaultLogLevel is the zap level used when none is configured.
	DefaultLogLevel = "warn"

	EnvLibraryFile = "SHELF_LIBRARY_FILE"
	EnvLogLevel    = "SHELF_LOG_LEVEL"

	// CacheDir holds derived data next to the catalog file.
	CacheDir  = ".shelf"
	IndexFile = "index.db"
)

// Keys that can be read and written with `shelf config`.
const (
	KeyLibraryFile = "library_file"
	KeyLogLevel    = "log_level"
)

// ValidKeys lists the supported config keys.
var ValidKeys = []string{KeyLibraryFile, KeyLogLevel}

// ValidLogLevels lists the accepted log_level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Settings is the resolved configuration for one run.
type Settings struct {
	LibraryFile string `json:"library_file"`
	LogLevel    string `json:"log_level"`
	Source      string `json:"source"` // where LibraryFile came from: flag, env, config, default
}

// Resolve picks the catalog file and log level. Precedence is the
// flag value, then the environment, then the global config, then defaults.
func Resolve(flagFile string) (Settings, error) {
	cfg, err := LoadGlobalConfig()
	if err != nil {
		return Settings{}, err
	}

	s := Settings{LibraryFile: DefaultLibraryFile, LogLevel: DefaultLogLevel, Source: "default"}

	switch {
	case flagFile != "":
		s.LibraryFile, s.Source = flagFile, "flag"
	case os.Getenv(EnvLibraryFile) != "":
		s.LibraryFile, s.Source = os.Getenv(EnvLibraryFile), "env"
	case cfg.LibraryFile != "":
		s.LibraryFile, s.Source = cfg.LibraryFile, "config"
	}
	s.LibraryFile = ExpandPath(s.LibraryFile)

	switch {
	case os.Getenv(EnvLogLevel) != "":
		s.LogLevel = os.Getenv(EnvLogLevel)
	case cfg.LogLevel != "":
		s.LogLevel = cfg.LogLevel
	}
	s.LogLevel = strings.ToLower(s.LogLevel)
	if err := ValidateLogLevel(s.LogLevel); err != nil {
		return Settings{}, err
	}

	return s, nil
}

// IndexPath returns the SQLite index path for a catalog file.
func IndexPath(libraryFile string) string {
	return filepath.Join(filepath.Dir(libraryFile), CacheDir, IndexFile)
}

// ValidateLogLevel checks that level is one of ValidLogLevels.
func ValidateLogLevel(level string) error {
	for _, valid := range ValidLogLevels {
		if level == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid log_level: %s (valid: %v)", level, ValidLogLevels)
}

// Get returns the value of a config key.
func (c *GlobalConfig) Get(key string) (string, error) {
	switch key {
	case KeyLibraryFile:
		return c.LibraryFile, nil
	case KeyLogLevel:
		return c.LogLevel, nil
	default:
		return "", fmt.Errorf("unknown config key: %s (valid: %v)", key, ValidKeys)
	}
}

// Set validates and assigns a config key.
func (c *GlobalConfig) Set(key, value string) error {
	switch key {
	case KeyLibraryFile:
		if value == "" {
			return fmt.Errorf("library_file must not be empty")
		}
		c.LibraryFile = value
	case KeyLogLevel:
		value = strings.ToLower(value)
		if err := ValidateLogLevel(value); err != nil {
			return err
		}
		c.LogLevel = value
	default:
		return fmt.Errorf("unknown config key: %s (valid: %v)", key, ValidKeys)
	}
	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
