// Package store provides SQLite-backed persistence for the task list.
// A Store owns a single database handle, creates the Task table on demand,
// and exposes one statement per operation. There is no caching: every
// ListTasks call re-reads the table.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"github.com/ShayCichocki/todo/pkg/models"
)

const (
	// DriverModernc is the pure-Go SQLite driver (modernc.org/sqlite).
	DriverModernc = "sqlite"
	// DriverCGO is the cgo SQLite driver (github.com/mattn/go-sqlite3).
	DriverCGO = "sqlite3"
)

// DefaultDriver is used when no driver option is given.
const DefaultDriver = DriverModernc

const schemaTask = `
CREATE TABLE IF NOT EXISTS Task (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT,
	completed INTEGER
)`

// Store wraps an SQLite connection holding the Task table.
type Store struct {
	conn   *sql.DB
	path   string
	driver string
	mu     sync.RWMutex
}

// Option configures Open.
type Option func(*Store)

// WithDriver selects the database/sql driver name. Empty keeps the default.
func WithDriver(driver string) Option {
	return func(s *Store) {
		if driver != "" {
			s.driver = driver
		}
	}
}

// ValidDriver reports whether name is a driver Open knows how to use.
func ValidDriver(name string) bool {
	return name == DriverModernc || name == DriverCGO
}

// Open opens the SQLite database at path, creating parent directories as
// needed. The schema is not touched; call EnsureSchema before use.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:   path,
		driver: DefaultDriver,
	}
	for _, opt := range opts {
		opt(s)
	}

	if !ValidDriver(s.driver) {
		return nil, fmt.Errorf("%w: unknown driver %q", ErrStorageUnavailable, s.driver)
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("%w: create db directory: %w", ErrStorageUnavailable, err)
		}
	}

	conn, err := sql.Open(s.driver, path)
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %w", ErrStorageUnavailable, err)
	}

	// Single connection so statements never interleave.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: connect: %w", ErrStorageUnavailable, err)
	}

	if path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("%w: enable WAL mode: %w", ErrStorageUnavailable, err)
		}
	}

	s.conn = conn
	return s, nil
}

// OpenWithSchema opens the database and ensures the Task table exists.
func OpenWithSchema(path string, opts ...Option) (*Store, error) {
	s, err := Open(path, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.EnsureSchema(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.Close()
}

// Path returns the path to the database file.
func (s *Store) Path() string {
	return s.path
}

// Driver returns the database/sql driver name in use.
func (s *Store) Driver() string {
	return s.driver
}

// EnsureSchema creates the Task table if it does not exist. Safe to call on
// every start; existing rows are left alone.
func (s *Store) EnsureSchema() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.conn.Exec(schemaTask); err != nil {
		return fmt.Errorf("%w: create task table: %w", ErrStorageUnavailable, err)
	}
	return nil
}

// ListTasks returns every row of the Task table in the engine's default
// order. Callers must not rely on ordering.
func (s *Store) ListTasks() ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.conn.Query("SELECT id, name, completed FROM Task")
	if err != nil {
		return nil, fmt.Errorf("%w: list tasks: %w", ErrQueryFailed, err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan task: %w", ErrQueryFailed, err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate tasks: %w", ErrQueryFailed, err)
	}

	return tasks, nil
}

// AddTask inserts a task with the given name and completed = 0, and
// returns the id the store assigned to it.
func (s *Store) AddTask(name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.conn.Exec("INSERT INTO Task (name, completed) VALUES (?, 0)", name)
	if err != nil {
		return 0, fmt.Errorf("%w: insert task: %w", ErrWriteFailed, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: get inserted id: %w", ErrWriteFailed, err)
	}

	return id, nil
}

// UpdateTaskName overwrites the name of task id. An id with no matching
// row is a no-op, not an error.
func (s *Store) UpdateTaskName(id int64, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.conn.Exec("UPDATE Task SET name = ? WHERE id = ?", name, id); err != nil {
		return fmt.Errorf("%w: update task %d: %w", ErrWriteFailed, id, err)
	}
	return nil
}

// DeleteTask removes task id. An id with no matching row is a no-op.
func (s *Store) DeleteTask(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.conn.Exec("DELETE FROM Task WHERE id = ?", id); err != nil {
		return fmt.Errorf("%w: delete task %d: %w", ErrWriteFailed, id, err)
	}
	return nil
}

// scanTask maps one row onto a Task. NULL name reads as "", NULL
// completed as false, and any non-zero completed as true.
func scanTask(rows *sql.Rows) (models.Task, error) {
	var (
		task      models.Task
		name      sql.NullString
		completed sql.NullInt64
	)
	if err := rows.Scan(&task.ID, &name, &completed); err != nil {
		return models.Task{}, err
	}
	task.Name = name.String
	task.Completed = completed.Valid && completed.Int64 != 0
	return task, nil
}
