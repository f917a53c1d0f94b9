package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/todo/internal/config"
	"github.com/ShayCichocki/todo/internal/store"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify todo configuration.

Without arguments, displays current configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.

Keys: store.path, store.driver, tui.watch, tui.debounce

Reads show the effective value, including --db, --driver, environment
variables and .todo.yaml. Sets change only ~/.config/todo/config.yaml;
project-specific overrides belong in .todo.yaml`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 2 {
			return setUserConfigValue(out, args[0], args[1])
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			for _, key := range configKeys {
				value, _ := getConfigValue(cfg, key)
				fmt.Fprintf(out, "%s: %s\n", key, value)
			}
			return nil
		}

		value, err := getConfigValue(cfg, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, value)
		return nil
	},
}

// setUserConfigValue changes one key in the user config file.
func setUserConfigValue(out io.Writer, key, value string) error {
	cfg, err := config.LoadUser()
	if err != nil {
		return fmt.Errorf("load user config: %w", err)
	}
	if err := setConfigValue(cfg, key, value); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	fmt.Fprintf(out, "Set %s = %s\n", key, value)
	return nil
}

var configKeys = []string{"store.path", "store.driver", "tui.watch", "tui.debounce"}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch strings.ToLower(key) {
	case "store.path":
		return cfg.Store.Path, nil
	case "store.driver":
		return cfg.Store.Driver, nil
	case "tui.watch":
		return strconv.FormatBool(cfg.TUI.Watch), nil
	case "tui.debounce":
		return cfg.TUI.Debounce.String(), nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// setConfigValue sets a configuration value by dot-notation key.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "store.path":
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("store.path must not be empty")
		}
		cfg.Store.Path = config.ExpandPath(value)
	case "store.driver":
		if !store.ValidDriver(value) {
			return fmt.Errorf("invalid driver %q: must be %s or %s", value, store.DriverModernc, store.DriverCGO)
		}
		cfg.Store.Driver = value
	case "tui.watch":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value: %s", value)
		}
		cfg.TUI.Watch = b
	case "tui.debounce":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration: %s", value)
		}
		if d < 0 {
			return fmt.Errorf("tui.debounce must not be negative")
		}
		cfg.TUI.Debounce = d
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}
