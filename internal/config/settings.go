// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"javelin-cli/internal/platform"

	"github.com/spf13/viper"
)

const (
	// AppName is the launcher name, used for config directory resolution.
	AppName = "javelin"
	// SettingsFileName is the launcher settings file name (without extension).
	SettingsFileName = "config"
	// SettingsFileExt is the settings file extension.
	SettingsFileExt = "toml"
)

// Settings are the launcher's own knobs, distinct from the application's
// launch configuration. They come from an optional TOML file in the launcher
// config directory, overridable via JAVELIN_* environment variables.
type Settings struct {
	// Verbose enables debug logging.
	Verbose bool `mapstructure:"verbose"`

	// StrictOptions rejects the launch when a malformed numeric JVM option
	// is found instead of dropping the option with a notice.
	StrictOptions bool `mapstructure:"strict_options"`

	// AllowEnvLookup enables the JAVA_HOME resolution strategy.
	AllowEnvLookup bool `mapstructure:"allow_env_lookup"`

	// AllowCommonLocations enables probing conventional install roots.
	AllowCommonLocations bool `mapstructure:"allow_common_locations"`

	// MinJavaVersion imposes a minimum Java major version. Zero means the
	// requirement comes solely from entry-point introspection.
	MinJavaVersion int `mapstructure:"min_java_version"`

	// MemoryFraction overrides the application's memory-fraction hint.
	MemoryFraction float64 `mapstructure:"memory_fraction"`
}

// ConfigDir returns the launcher configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// LoadSettings reads the launcher settings file. A missing file yields the
// defaults; a malformed file is an error the caller surfaces as a warning.
func LoadSettings() (*Settings, error) {
	v := viper.New()
	v.SetConfigName(SettingsFileName)
	v.SetConfigType(SettingsFileExt)
	v.SetEnvPrefix("JAVELIN")
	v.AutomaticEnv()

	v.SetDefault("verbose", false)
	v.SetDefault("strict_options", false)
	v.SetDefault("allow_env_lookup", true)
	v.SetDefault("allow_common_locations", true)
	v.SetDefault("min_java_version", 0)
	v.SetDefault("memory_fraction", 0.0)

	if dir, err := ConfigDir(); err == nil {
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return defaultSettings(), fmt.Errorf("read launcher settings: %w", err)
		}
	}

	settings := defaultSettings()
	if err := v.Unmarshal(settings); err != nil {
		return defaultSettings(), fmt.Errorf("parse launcher settings: %w", err)
	}
	return settings, nil
}

func defaultSettings() *Settings {
	return &Settings{
		AllowEnvLookup:       true,
		AllowCommonLocations: true,
	}
}
