package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/todo/internal/store"
)

var editCmd = &cobra.Command{
	Use:   "edit <id> <name>",
	Short: "Rename a task",
	Long: `Replace the name of a task. The completed flag is left alone.
An id that matches no task is not an error.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	name := strings.Join(args[1:], " ")

	return withStore(func(s *store.Store) error {
		if err := s.UpdateTaskName(id, name); err != nil {
			return err
		}
		printStatus(cmd.OutOrStdout(), "✓", fmt.Sprintf("Task %d: %s", id, name), color.FgGreen)
		return nil
	})
}
