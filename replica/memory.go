package replica

import (
	"context"
	"sync"

	"tasksearch/domain/entity"
	"tasksearch/domain/repository"
)

// memoryRepository keeps the replica in process memory. Each user maps to an
// immutable slice; Replace swaps the whole slice under the user's key, so a
// concurrent Query sees either the old or the new set in full. Distinct users
// never contend.
type memoryRepository struct {
	users sync.Map // int64 -> []entity.Task, slices are never mutated in place
}

// NewMemoryRepository creates an in-memory replica repository
func NewMemoryRepository() repository.ReplicaRepository {
	return &memoryRepository{}
}

func (r *memoryRepository) Query(_ context.Context, userID int64, match repository.Predicate) ([]entity.Task, error) {
	value, ok := r.users.Load(userID)
	if !ok {
		return []entity.Task{}, nil
	}

	tasks := value.([]entity.Task)
	result := make([]entity.Task, 0, len(tasks))
	for i := range tasks {
		if match == nil || match(&tasks[i]) {
			result = append(result, tasks[i])
		}
	}
	return result, nil
}

func (r *memoryRepository) Replace(_ context.Context, userID int64, tasks []entity.Task) error {
	// stored snapshot must not alias the caller's slice
	snapshot := make([]entity.Task, len(tasks))
	copy(snapshot, tasks)
	r.users.Store(userID, snapshot)
	return nil
}
