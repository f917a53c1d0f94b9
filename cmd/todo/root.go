package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/todo/internal/store"
)

var (
	flagDBPath string
	flagDriver string
)

var rootCmd = &cobra.Command{
	Use:   "todo",
	Short: "A local task list",
	Long: `todo keeps a list of short text tasks in a local SQLite database.

With no arguments, launches the interactive task list where you can add,
edit and delete tasks. The subcommands do the same from scripts.

The database location comes from, in order: --db, TODO_DB_PATH,
.todo.yaml in the current directory or a parent, ~/.config/todo/config.yaml,
and finally ~/.local/share/todo/tasks.db.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the task database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDriver, "driver", "", "SQLite driver: "+store.DriverModernc+" (pure Go) or "+store.DriverCGO+" (cgo)")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
