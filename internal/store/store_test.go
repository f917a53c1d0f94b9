package store

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/ShayCichocki/todo/pkg/models"
)

// tempDBPath returns a path to a temp database file.
func tempDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "tasks.db")
}

// setupTestStore opens a store with the schema in place.
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenWithSchema(tempDBPath(t))
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func mustAdd(t *testing.T, s *Store, name string) int64 {
	t.Helper()
	id, err := s.AddTask(name)
	if err != nil {
		t.Fatalf("AddTask(%q) failed: %v", name, err)
	}
	return id
}

func mustList(t *testing.T, s *Store) []models.Task {
	t.Helper()
	tasks, err := s.ListTasks()
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks
}

func TestOpen(t *testing.T) {
	path := tempDBPath(t)
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	if s.Path() != path {
		t.Errorf("Path() = %q, want %q", s.Path(), path)
	}
	if s.Driver() != DefaultDriver {
		t.Errorf("Driver() = %q, want %q", s.Driver(), DefaultDriver)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("database file does not exist at %s", path)
	}
}

func TestOpen_CreatesParentDirectories(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "a", "b", "c")
	s, err := Open(filepath.Join(nested, "tasks.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(nested); os.IsNotExist(err) {
		t.Errorf("parent directories not created: %s", nested)
	}
}

func TestOpen_InvalidPath(t *testing.T) {
	// Nothing can be created under /proc.
	_, err := Open("/proc/nonexistent/tasks.db")
	if err == nil {
		t.Fatal("expected error opening db at invalid path")
	}
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("error = %v, want ErrStorageUnavailable", err)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(tempDBPath(t), WithDriver("postgres"))
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("error = %v, want ErrStorageUnavailable", err)
	}
}

func TestOpen_EmptyDriverKeepsDefault(t *testing.T) {
	s, err := Open(tempDBPath(t), WithDriver(""))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	if s.Driver() != DefaultDriver {
		t.Errorf("Driver() = %q, want %q", s.Driver(), DefaultDriver)
	}
}

func TestOpen_CGODriver(t *testing.T) {
	s, err := OpenWithSchema(tempDBPath(t), WithDriver(DriverCGO))
	if err != nil {
		if strings.Contains(err.Error(), "CGO_ENABLED=0") {
			t.Skip("go-sqlite3 requires cgo")
		}
		t.Fatalf("OpenWithSchema failed: %v", err)
	}
	defer s.Close()

	id := mustAdd(t, s, "via cgo")
	tasks := mustList(t, s)
	if len(tasks) != 1 || tasks[0].ID != id || tasks[0].Name != "via cgo" {
		t.Errorf("tasks = %+v, want one task %d named %q", tasks, id, "via cgo")
	}
}

func TestOpen_Memory(t *testing.T) {
	s, err := OpenWithSchema(":memory:")
	if err != nil {
		t.Fatalf("OpenWithSchema failed: %v", err)
	}
	defer s.Close()

	mustAdd(t, s, "a")
	mustAdd(t, s, "b")
	if got := len(mustList(t, s)); got != 2 {
		t.Errorf("len(tasks) = %d, want 2", got)
	}
}

func TestValidDriver(t *testing.T) {
	tests := []struct {
		driver string
		want   bool
	}{
		{DriverModernc, true},
		{DriverCGO, true},
		{"", false},
		{"postgres", false},
		{"SQLite", false},
	}

	for _, tt := range tests {
		if got := ValidDriver(tt.driver); got != tt.want {
			t.Errorf("ValidDriver(%q) = %v, want %v", tt.driver, got, tt.want)
		}
	}
}

func TestClose(t *testing.T) {
	s, err := Open(tempDBPath(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}

	if _, err := s.ListTasks(); !errors.Is(err, ErrQueryFailed) {
		t.Errorf("ListTasks after close = %v, want ErrQueryFailed", err)
	}
	if err := s.EnsureSchema(); !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("EnsureSchema after close = %v, want ErrStorageUnavailable", err)
	}
}

func TestEnsureSchema_CreatesTable(t *testing.T) {
	s := setupTestStore(t)

	var count int
	row := s.conn.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='Task'")
	if err := row.Scan(&count); err != nil {
		t.Fatalf("failed to check table: %v", err)
	}
	if count != 1 {
		t.Errorf("Task table count = %d, want 1", count)
	}
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	path := tempDBPath(t)

	// First launch.
	s, err := OpenWithSchema(path)
	if err != nil {
		t.Fatalf("first OpenWithSchema failed: %v", err)
	}
	idA := mustAdd(t, s, "A")
	idB := mustAdd(t, s, "B")
	if err := s.EnsureSchema(); err != nil {
		t.Fatalf("second EnsureSchema on same handle failed: %v", err)
	}
	s.Close()

	// Second launch.
	s, err = OpenWithSchema(path)
	if err != nil {
		t.Fatalf("second OpenWithSchema failed: %v", err)
	}
	defer s.Close()

	tasks := mustList(t, s)
	if len(tasks) != 2 {
		t.Fatalf("len(tasks) = %d, want 2 after relaunch", len(tasks))
	}
	if tasks[0].ID != idA || tasks[0].Name != "A" || tasks[1].ID != idB || tasks[1].Name != "B" {
		t.Errorf("tasks = %+v, want A(%d) and B(%d)", tasks, idA, idB)
	}
}

func TestWithoutSchema_OperationsFail(t *testing.T) {
	s, err := Open(tempDBPath(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	if _, err := s.ListTasks(); !errors.Is(err, ErrQueryFailed) {
		t.Errorf("ListTasks = %v, want ErrQueryFailed", err)
	}
	if _, err := s.AddTask("x"); !errors.Is(err, ErrWriteFailed) {
		t.Errorf("AddTask = %v, want ErrWriteFailed", err)
	}
	if err := s.UpdateTaskName(1, "x"); !errors.Is(err, ErrWriteFailed) {
		t.Errorf("UpdateTaskName = %v, want ErrWriteFailed", err)
	}
	if err := s.DeleteTask(1); !errors.Is(err, ErrWriteFailed) {
		t.Errorf("DeleteTask = %v, want ErrWriteFailed", err)
	}
}

func TestListTasks_Empty(t *testing.T) {
	s := setupTestStore(t)

	tasks, err := s.ListTasks()
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if tasks == nil {
		t.Error("ListTasks returned nil slice, want empty")
	}
	if len(tasks) != 0 {
		t.Errorf("len(tasks) = %d, want 0", len(tasks))
	}
}

func TestAddTask(t *testing.T) {
	s := setupTestStore(t)

	id := mustAdd(t, s, "Buy milk")

	tasks := mustList(t, s)
	if len(tasks) != 1 {
		t.Fatalf("len(tasks) = %d, want 1", len(tasks))
	}
	want := models.Task{ID: id, Name: "Buy milk", Completed: false}
	if tasks[0] != want {
		t.Errorf("task = %+v, want %+v", tasks[0], want)
	}
}

func TestAddTask_AcceptsAnyName(t *testing.T) {
	s := setupTestStore(t)

	names := []string{"", "   ", "emoji ✓", "quote ' \" ;DROP TABLE Task;", strings.Repeat("x", 4096)}
	for _, name := range names {
		mustAdd(t, s, name)
	}

	tasks := mustList(t, s)
	if len(tasks) != len(names) {
		t.Fatalf("len(tasks) = %d, want %d", len(tasks), len(names))
	}
	for i, name := range names {
		if tasks[i].Name != name {
			t.Errorf("tasks[%d].Name = %q, want %q", i, tasks[i].Name, name)
		}
	}
}

func TestAddTask_IDsStrictlyIncrease(t *testing.T) {
	s := setupTestStore(t)

	var prev int64
	seen := make(map[int64]bool)
	for i := 0; i < 20; i++ {
		id := mustAdd(t, s, "task")
		if id <= prev {
			t.Fatalf("id %d not greater than previous %d", id, prev)
		}
		if seen[id] {
			t.Fatalf("id %d reused", id)
		}
		seen[id] = true
		prev = id
	}
}

func TestAddTask_IDsNotReusedAfterDelete(t *testing.T) {
	s := setupTestStore(t)

	mustAdd(t, s, "a")
	last := mustAdd(t, s, "b")
	if err := s.DeleteTask(last); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}

	next := mustAdd(t, s, "c")
	if next <= last {
		t.Errorf("id after deleting %d = %d, want greater", last, next)
	}
}

func TestUpdateTaskName(t *testing.T) {
	s := setupTestStore(t)

	idA := mustAdd(t, s, "A")
	idB := mustAdd(t, s, "B")

	if err := s.UpdateTaskName(idA, "New name"); err != nil {
		t.Fatalf("UpdateTaskName failed: %v", err)
	}

	tasks := mustList(t, s)
	want := []models.Task{
		{ID: idA, Name: "New name"},
		{ID: idB, Name: "B"},
	}
	if len(tasks) != len(want) {
		t.Fatalf("len(tasks) = %d, want %d", len(tasks), len(want))
	}
	for i := range want {
		if tasks[i] != want[i] {
			t.Errorf("tasks[%d] = %+v, want %+v", i, tasks[i], want[i])
		}
	}
}

func TestUpdateTaskName_PreservesCompleted(t *testing.T) {
	s := setupTestStore(t)

	id := mustAdd(t, s, "done already")
	if _, err := s.conn.Exec("UPDATE Task SET completed = 1 WHERE id = ?", id); err != nil {
		t.Fatalf("set completed: %v", err)
	}

	if err := s.UpdateTaskName(id, "renamed"); err != nil {
		t.Fatalf("UpdateTaskName failed: %v", err)
	}

	tasks := mustList(t, s)
	if !tasks[0].Completed {
		t.Error("Completed = false after rename, want true")
	}
	if tasks[0].ID != id {
		t.Errorf("ID = %d, want %d", tasks[0].ID, id)
	}
}

func TestUpdateTaskName_MissingIDIsNoop(t *testing.T) {
	s := setupTestStore(t)

	id := mustAdd(t, s, "A")
	before := mustList(t, s)

	if err := s.UpdateTaskName(id+100, "X"); err != nil {
		t.Errorf("UpdateTaskName on missing id = %v, want nil", err)
	}

	after := mustList(t, s)
	if len(after) != len(before) || after[0] != before[0] {
		t.Errorf("table changed: before %+v, after %+v", before, after)
	}
}

func TestDeleteTask(t *testing.T) {
	s := setupTestStore(t)

	idA := mustAdd(t, s, "A")
	idB := mustAdd(t, s, "B")
	idC := mustAdd(t, s, "C")

	if err := s.DeleteTask(idB); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}

	tasks := mustList(t, s)
	if len(tasks) != 2 {
		t.Fatalf("len(tasks) = %d, want 2", len(tasks))
	}
	if tasks[0].ID != idA || tasks[1].ID != idC {
		t.Errorf("remaining ids = %d, %d, want %d, %d", tasks[0].ID, tasks[1].ID, idA, idC)
	}
	if models.FindTask(tasks, idB) != -1 {
		t.Errorf("deleted task %d still listed", idB)
	}
}

func TestDeleteTask_MissingIDIsNoop(t *testing.T) {
	s := setupTestStore(t)

	mustAdd(t, s, "A")

	if err := s.DeleteTask(999); err != nil {
		t.Errorf("DeleteTask on missing id = %v, want nil", err)
	}
	if got := len(mustList(t, s)); got != 1 {
		t.Errorf("len(tasks) = %d, want 1", got)
	}
}

func TestListTasks_MapsExternalRows(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.conn.Exec("INSERT INTO Task (name, completed) VALUES (NULL, NULL), ('two', 2), ('one', 1)"); err != nil {
		t.Fatalf("insert raw rows: %v", err)
	}

	tasks := mustList(t, s)
	if len(tasks) != 3 {
		t.Fatalf("len(tasks) = %d, want 3", len(tasks))
	}
	if tasks[0].Name != "" || tasks[0].Completed {
		t.Errorf("NULL row = %+v, want empty name and not completed", tasks[0])
	}
	if !tasks[1].Completed || !tasks[2].Completed {
		t.Errorf("non-zero completed rows = %+v, %+v, want completed", tasks[1], tasks[2])
	}
}

func TestEndToEnd(t *testing.T) {
	s := setupTestStore(t)

	idA := mustAdd(t, s, "A")
	idB := mustAdd(t, s, "B")

	tasks := mustList(t, s)
	if len(tasks) != 2 || tasks[0].Name != "A" || tasks[1].Name != "B" {
		t.Fatalf("after adds: %+v, want A and B", tasks)
	}

	if err := s.UpdateTaskName(idA, "A2"); err != nil {
		t.Fatalf("UpdateTaskName failed: %v", err)
	}
	tasks = mustList(t, s)
	if len(tasks) != 2 || tasks[0].Name != "A2" || tasks[1].Name != "B" {
		t.Fatalf("after update: %+v, want A2 and B", tasks)
	}

	if err := s.DeleteTask(idB); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	tasks = mustList(t, s)
	if len(tasks) != 1 || tasks[0].ID != idA || tasks[0].Name != "A2" {
		t.Fatalf("after delete: %+v, want only A2", tasks)
	}
}
