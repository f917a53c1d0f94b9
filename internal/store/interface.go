package store

import (
	"io"

	"github.com/ShayCichocki/todo/pkg/models"
)

// TaskLister reads the full task list.
type TaskLister interface {
	ListTasks() ([]models.Task, error)
}

// TaskWriter mutates tasks. Zero-row updates and deletes are not errors.
type TaskWriter interface {
	AddTask(name string) (int64, error)
	UpdateTaskName(id int64, name string) error
	DeleteTask(id int64) error
}

// TaskStore is everything the presentation layer needs from the store.
type TaskStore interface {
	TaskLister
	TaskWriter
}

// Compile-time verification that Store implements all interfaces.
var (
	_ TaskStore  = (*Store)(nil)
	_ TaskLister = (*Store)(nil)
	_ TaskWriter = (*Store)(nil)
	_ io.Closer  = (*Store)(nil)
)
