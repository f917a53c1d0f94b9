package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/todo/internal/store"
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new task",
	Long: `Add a new task. Multiple arguments are joined with spaces, so quoting
is optional. The new task starts incomplete.

Examples:
  todo add "Buy milk"
  todo add Call the plumber`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	name := strings.Join(args, " ")

	return withStore(func(s *store.Store) error {
		id, err := s.AddTask(name)
		if err != nil {
			return err
		}
		printStatus(cmd.OutOrStdout(), "✓", fmt.Sprintf("Task added: %d", id), color.FgGreen)
		return nil
	})
}
