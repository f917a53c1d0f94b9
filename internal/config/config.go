// Package config handles configuration loading and management for todo.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ShayCichocki/todo/internal/store"
)

// Environment variables that override file configuration.
const (
	EnvDBPath   = "TODO_DB_PATH"
	EnvDBDriver = "TODO_DB_DRIVER"
)

// ProjectConfigName is the project-level override file looked up from the
// working directory upwards.
const ProjectConfigName = ".todo.yaml"

// Config holds all configuration for todo.
type Config struct {
	Store StoreConfig `mapstructure:"store"`
	TUI   TUIConfig   `mapstructure:"tui"`
}

// StoreConfig selects the database file and driver.
type StoreConfig struct {
	Path   string `mapstructure:"path"`
	Driver string `mapstructure:"driver"`
}

// TUIConfig holds TUI behaviour settings.
type TUIConfig struct {
	// Watch re-lists tasks when another process writes the database.
	Watch bool `mapstructure:"watch"`
	// Debounce coalesces bursts of file events into one refresh.
	Debounce time.Duration `mapstructure:"debounce"`
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (TODO_DB_PATH, TODO_DB_DRIVER)
// 2. Project config (.todo.yaml in current directory or parent)
// 3. User config (~/.config/todo/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getUserConfigDir())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	if projectConfig := findProjectConfig(); projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading project config %s: %w", projectConfig, err)
		}
		if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	bindEnv(v)

	return unmarshal(v)
}

// LoadFromPath loads configuration from a specific path. Environment
// overrides still apply.
func LoadFromPath(path string) (*Config, error) {
	return loadFile(path, true)
}

// LoadUser loads the user config file alone, without project or
// environment overrides. A missing file yields Default. Use it to edit
// the file that Save writes.
func LoadUser() (*Config, error) {
	path := GetUserConfigPath()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return loadFile(path, false)
}

func loadFile(path string, withEnv bool) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	if withEnv {
		bindEnv(v)
	}

	return unmarshal(v)
}

// Save writes the configuration to the user config file.
func Save(cfg *Config) error {
	return SaveTo(GetUserConfigPath(), cfg)
}

// SaveTo writes the configuration to path, creating its directory.
func SaveTo(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)

	v.Set("store.path", cfg.Store.Path)
	v.Set("store.driver", cfg.Store.Driver)
	v.Set("tui.watch", cfg.TUI.Watch)
	v.Set("tui.debounce", cfg.TUI.Debounce.String())

	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration can be used to open a store.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Store.Path) == "" {
		return errors.New("store.path must not be empty")
	}
	if !store.ValidDriver(c.Store.Driver) {
		return fmt.Errorf("store.driver %q is not one of %q, %q", c.Store.Driver, store.DriverModernc, store.DriverCGO)
	}
	if c.TUI.Debounce < 0 {
		return fmt.Errorf("tui.debounce must not be negative, got %s", c.TUI.Debounce)
	}
	return nil
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// DefaultDBPath returns the XDG data path for the task database.
func DefaultDBPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".", ".local", "share", "todo", "tasks.db")
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "todo", "tasks.db")
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Path:   DefaultDBPath(),
			Driver: store.DefaultDriver,
		},
		TUI: TUIConfig{
			Watch:    true,
			Debounce: 100 * time.Millisecond,
		},
	}
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("store.driver", d.Store.Driver)
	v.SetDefault("tui.watch", d.TUI.Watch)
	v.SetDefault("tui.debounce", d.TUI.Debounce.String())
}

func bindEnv(v *viper.Viper) {
	v.BindEnv("store.path", EnvDBPath)
	v.BindEnv("store.driver", EnvDBDriver)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.Store.Path = ExpandPath(cfg.Store.Path)
	return cfg, nil
}

// ExpandPath expands ${VAR} references and a leading "~/".
func ExpandPath(p string) string {
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// getUserConfigDir returns the XDG config directory for todo.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "todo")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "todo")
	}
	return filepath.Join(home, ".config", "todo")
}

// findProjectConfig searches for .todo.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ProjectConfigName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}
