package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"

	"github.com/ShayCichocki/todo/internal/config"
	"github.com/ShayCichocki/todo/internal/store"
)

// loadConfig loads the layered configuration and applies --db and --driver.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return applyFlags(cfg)
}

// loadUserConfig loads only the user config file with --db and --driver
// applied. Environment and project overrides are left out; the result is
// what init writes back.
func loadUserConfig() (*config.Config, error) {
	cfg, err := config.LoadUser()
	if err != nil {
		return nil, fmt.Errorf("load user config: %w", err)
	}
	return applyFlags(cfg)
}

func applyFlags(cfg *config.Config) (*config.Config, error) {
	if flagDBPath != "" {
		cfg.Store.Path = config.ExpandPath(flagDBPath)
	}
	if flagDriver != "" {
		cfg.Store.Driver = flagDriver
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// openStore opens the configured database and ensures the schema exists.
func openStore(cfg *config.Config) (*store.Store, error) {
	s, err := store.OpenWithSchema(cfg.Store.Path, store.WithDriver(cfg.Store.Driver))
	if err != nil {
		return nil, fmt.Errorf("open task database %s: %w", cfg.Store.Path, err)
	}
	return s, nil
}

// withStore loads config, opens the store, runs fn, and closes the store.
func withStore(fn func(s *store.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	return fn(s)
}

// parseID parses a task id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q: must be an integer", arg)
	}
	return id, nil
}

// printStatus prints a status line with color
func printStatus(w io.Writer, symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	fmt.Fprintf(w, "%s %s\n", c.Sprint(symbol), message)
}
