package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/todo/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file and task database",
	Long: `Set up todo for first use.

This command:
  - Writes ~/.config/todo/config.yaml, unless it exists (flags are saved,
    environment variables and .todo.yaml are not)
  - Creates the task database and its table if missing

Running it again is safe; existing tasks are never touched.

Examples:
  todo init                       # Use defaults
  todo init --db ~/notes/tasks.db # Store tasks somewhere else
  todo init --force               # Rewrite the config file`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig()
	if err != nil {
		printStatus(out, "✗", err.Error(), color.FgRed)
		return err
	}

	configPath := config.GetUserConfigPath()
	_, statErr := os.Stat(configPath)
	switch {
	case statErr == nil && !initForce:
		printStatus(out, "✓", "Using existing config "+configPath, color.FgGreen)
	default:
		userCfg, err := loadUserConfig()
		if err != nil {
			printStatus(out, "✗", err.Error(), color.FgRed)
			return err
		}
		if err := config.Save(userCfg); err != nil {
			printStatus(out, "✗", "Could not write config: "+err.Error(), color.FgRed)
			return err
		}
		printStatus(out, "✓", "Wrote config "+configPath, color.FgGreen)
	}

	if projectConfig := config.GetProjectConfigPath(); projectConfig != "" {
		printStatus(out, "⚠", "Project config "+projectConfig+" overrides user settings here", color.FgYellow)
	}

	s, err := openStore(cfg)
	if err != nil {
		printStatus(out, "✗", err.Error(), color.FgRed)
		return err
	}
	defer s.Close()

	tasks, err := s.ListTasks()
	if err != nil {
		printStatus(out, "✗", err.Error(), color.FgRed)
		return err
	}
	printStatus(out, "✓", fmt.Sprintf("Task database ready at %s (%d tasks, driver %s)", s.Path(), len(tasks), s.Driver()), color.FgGreen)

	fmt.Fprintf(out, "\n%s todo is ready. Run `todo` to open the task list.\n", color.GreenString("✓"))
	return nil
}
