package models

// Task is a single to-do item as stored in the Task table.
type Task struct {
	// ID is assigned by the store on creation and never changes.
	ID int64 `json:"id" yaml:"id"`
	// Name is the user-supplied text. It may be empty.
	Name string `json:"name" yaml:"name"`
	// Completed mirrors the integer completed column (0 or 1).
	Completed bool `json:"completed" yaml:"completed"`
}

// FindTask returns the index of the task with the given ID, or -1.
func FindTask(tasks []Task, id int64) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
