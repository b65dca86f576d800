package app

import (
	"fmt"

	"github.com/hylla/kanvas/internal/domain"
)

// Store owns the ordered task collection of one board. It is not safe for
// concurrent use; the host drives it from a single event loop.
type Store struct {
	tasks []domain.Task
	index map[string]int
}

// NewStore validates and copies the initial collection. Insertion order is
// the row order inside every column.
func NewStore(tasks []domain.Task) (*Store, error) {
	s := &Store{
		tasks: make([]domain.Task, 0, len(tasks)),
		index: make(map[string]int, len(tasks)),
	}
	for idx, task := range tasks {
		normalized, err := domain.NewTask(domain.TaskInput{
			ID:     task.ID,
			Title:  task.Title,
			Status: string(task.Status),
		})
		if err != nil {
			return nil, fmt.Errorf("task[%d]: %w", idx, err)
		}
		if _, ok := s.index[normalized.ID]; ok {
			return nil, fmt.Errorf("task[%d] %q: %w", idx, normalized.ID, domain.ErrDuplicateID)
		}
		s.index[normalized.ID] = len(s.tasks)
		s.tasks = append(s.tasks, normalized)
	}
	return s, nil
}

// Tasks returns a copy of every task in store order.
func (s *Store) Tasks() []domain.Task {
	out := make([]domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Task returns one task by id.
func (s *Store) Task(id string) (domain.Task, bool) {
	idx, ok := s.index[id]
	if !ok {
		return domain.Task{}, false
	}
	return s.tasks[idx], true
}

// TasksIn returns the tasks of one column, preserving store order.
func (s *Store) TasksIn(status domain.Status) []domain.Task {
	out := make([]domain.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if task.Status == status {
			out = append(out, task)
		}
	}
	return out
}

// SetStatus moves a task to another column and reports whether anything
// changed. Unknown ids and unrecognized statuses are ignored.
func (s *Store) SetStatus(id string, status domain.Status) bool {
	if !status.Valid() {
		return false
	}
	idx, ok := s.index[id]
	if !ok {
		return false
	}
	if s.tasks[idx].Status == status {
		return false
	}
	s.tasks[idx].Status = status
	return true
}

// Counts returns the number of tasks per column key.
func (s *Store) Counts() map[domain.Status]int {
	out := make(map[domain.Status]int, domain.ColumnCount)
	for _, col := range domain.Columns() {
		out[col.Key] = 0
	}
	for _, task := range s.tasks {
		out[task.Status]++
	}
	return out
}
