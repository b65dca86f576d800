package domain

import "strings"

// Task is one card on the board.
type Task struct {
	ID     string
	Title  string
	Status Status
}

// TaskInput holds raw values for NewTask.
type TaskInput struct {
	ID     string
	Title  string
	Status string
}

// NewTask validates and normalizes task input.
func NewTask(in TaskInput) (Task, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.Title = strings.TrimSpace(in.Title)

	if in.ID == "" {
		return Task{}, ErrInvalidID
	}
	if in.Title == "" {
		return Task{}, ErrInvalidTitle
	}
	status, err := ParseStatus(in.Status)
	if err != nil {
		return Task{}, err
	}

	return Task{
		ID:     in.ID,
		Title:  in.Title,
		Status: status,
	}, nil
}

// Valid reports whether the task could have come out of NewTask.
func (t Task) Valid() bool {
	return strings.TrimSpace(t.ID) != "" && strings.TrimSpace(t.Title) != "" && t.Status.Valid()
}
