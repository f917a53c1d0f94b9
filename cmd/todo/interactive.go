package main

import (
	"fmt"
	"io"
	"log"

	"github.com/ShayCichocki/todo/internal/notify"
	"github.com/ShayCichocki/todo/internal/tui"
)

func runInteractive() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// A store that cannot open is fatal; the TUI never starts.
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	program, _ := tui.NewProgram(s)

	if cfg.TUI.Watch {
		watcher, err := notify.NewWatcher(s.Path(), cfg.TUI.Debounce, func() {
			program.Send(tui.DatabaseChangedMsg{})
		})
		if err != nil {
			log.Printf("[interactive] not watching %s for changes: %v", s.Path(), err)
		} else {
			defer watcher.Close()
		}
	}

	// Suppress log output while TUI is active
	originalOutput := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(originalOutput)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run task list: %w", err)
	}
	return nil
}
