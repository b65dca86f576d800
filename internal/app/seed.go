package app

import (
	"fmt"
	"strings"

	"github.com/hylla/kanvas/internal/domain"
)

// IDGenerator returns unique identifiers for seed tasks that carry none.
type IDGenerator func() string

// TaskSeed is one externally supplied task definition.
type TaskSeed struct {
	ID     string
	Title  string
	Status string
}

// DefaultSeed returns the sample board.
func DefaultSeed() []TaskSeed {
	return []TaskSeed{
		{ID: "1", Title: "Do dishes", Status: string(domain.StatusIncompleted)},
		{ID: "2", Title: "Read book", Status: string(domain.StatusOngoing)},
		{ID: "3", Title: "Buy milk", Status: string(domain.StatusCompleted)},
		{ID: "4", Title: "Learn React", Status: string(domain.StatusIncompleted)},
	}
}

// SeedTasks converts seed definitions into validated tasks.
func SeedTasks(seeds []TaskSeed, idGen IDGenerator) ([]domain.Task, error) {
	out := make([]domain.Task, 0, len(seeds))
	for idx, seed := range seeds {
		id := strings.TrimSpace(seed.ID)
		if id == "" && idGen != nil {
			id = idGen()
		}
		task, err := domain.NewTask(domain.TaskInput{
			ID:     id,
			Title:  seed.Title,
			Status: seed.Status,
		})
		if err != nil {
			return nil, fmt.Errorf("seed task[%d]: %w", idx, err)
		}
		out = append(out, task)
	}
	return out, nil
}

// NewSeededStore builds a store from seed definitions.
func NewSeededStore(seeds []TaskSeed, idGen IDGenerator) (*Store, error) {
	tasks, err := SeedTasks(seeds, idGen)
	if err != nil {
		return nil, err
	}
	return NewStore(tasks)
}
