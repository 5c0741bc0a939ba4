// Copyright (c) 2026 Mealdeck Team
// Mealdeck - food delivery operations consoles
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads and writes the Mealdeck configuration. Precedence is
// flags > environment > config file > defaults, handled by viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the top-level application configuration.
type Config struct {
	API struct {
		BaseURL string        `mapstructure:"base_url" yaml:"base_url"`
		Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
	} `mapstructure:"api" yaml:"api"`
	Cache struct {
		Path string        `mapstructure:"path" yaml:"path"`
		TTL  time.Duration `mapstructure:"ttl" yaml:"ttl"`
	} `mapstructure:"cache" yaml:"cache"`
	Language string `mapstructure:"language" yaml:"language"`
	PageSize int    `mapstructure:"page_size" yaml:"page_size"`
	Debug    bool   `mapstructure:"debug" yaml:"debug"`
}

// Defaults returns the default configuration values keyed by viper path.
func Defaults() map[string]any {
	return map[string]any{
		"api.base_url": "http://localhost:8080",
		"api.timeout":  10 * time.Second,
		"cache.path":   "", // empty selects the user cache directory
		"cache.ttl":    30 * time.Second,
		"language":     "en",
		"page_size":    20,
		"debug":        false,
	}
}

// getConfigPath returns the full path for the configuration file.
func getConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Mealdeck")
		default: // Linux, macOS, etc.
			configDir = "/etc/mealdeck"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "mealdeck")
	}

	return filepath.Join(configDir, "mealdeck.yaml"), nil
}

// LoadConfig resolves the configuration for a command invocation. An
// explicit config file path (from --config) takes precedence over the
// standard search locations.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, explicitConfigFile *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("mealdeck")
	v.SetConfigType("yaml")

	if explicitConfigFile != nil && *explicitConfigFile != "" {
		v.SetConfigFile(*explicitConfigFile)
	}

	if userConfigPath, err := getConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := getConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".") // mealdeck.yaml in the current dir

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; anything else is fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	}

	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvPrefix("mealdeck")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, nil
}

// WriteConfigFile serializes the configuration to the standard location.
func WriteConfigFile[T any](c *T, system bool) error {
	path, err := getConfigPath(system)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return err
	}

	return nil
}

// CachePath resolves the snapshot cache location, falling back to the user
// cache directory when unset.
func CachePath(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("could not get user cache directory: %w", err)
	}
	return filepath.Join(dir, "mealdeck", "snapshots.db"), nil
}
