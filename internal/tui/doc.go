// Package tui provides the terminal user interface for the task list.
//
// The App is a single screen: an input field, an action that either adds a
// new task or renames the task being edited, and the list of tasks with
// edit and delete actions per row. It reads and writes only through a
// store.TaskStore and re-lists after every write.
//
// Usage:
//
//	program, _ := tui.NewProgram(taskStore)
//
//	// Another process wrote the database
//	program.Send(tui.DatabaseChangedMsg{})
//
//	if _, err := program.Run(); err != nil {
//	    return err
//	}
package tui
