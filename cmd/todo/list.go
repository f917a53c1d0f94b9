package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/ShayCichocki/todo/internal/store"
	"github.com/ShayCichocki/todo/pkg/models"
)

// Output formats for list.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

var listOutput string

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all tasks",
	Long: `List every task in the database. Order is whatever SQLite returns.

Use -o json or -o yaml for machine-readable output.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listOutput, "output", "o", outputText, "Output format: text, json or yaml")
}

func runList(cmd *cobra.Command, args []string) error {
	return withStore(func(s *store.Store) error {
		tasks, err := s.ListTasks()
		if err != nil {
			return err
		}
		return renderTasks(cmd.OutOrStdout(), tasks, listOutput)
	})
}

// renderTasks writes tasks to w in the given format.
func renderTasks(w io.Writer, tasks []models.Task, format string) error {
	switch format {
	case outputText, "":
		renderText(w, tasks)
		return nil
	case outputJSON:
		data, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case outputYAML:
		data, err := yaml.Marshal(tasks)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}

func renderText(w io.Writer, tasks []models.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return
	}

	for _, task := range tasks {
		icon := "○"
		if task.Completed {
			icon = color.GreenString("✓")
		}
		fmt.Fprintf(w, "%s [%d] %s\n", icon, task.ID, task.Name)
	}
}
