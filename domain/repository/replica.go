package repository

import (
	"context"

	"tasksearch/domain/entity"
)

// Predicate is a pure boolean filter over a single task record
type Predicate func(t *entity.Task) bool

// ReplicaRepository is the per-user local mirror of task records.
//
// Replace for a given user is all-or-nothing: a concurrent Query observes
// either the previous or the new record set in full, never a mix. Replaces
// for distinct users must not block one another. Query reads the current
// snapshot only and never triggers a sync.
type ReplicaRepository interface {
	// Query returns the user's records matching the predicate, unordered
	Query(ctx context.Context, userID int64, match Predicate) ([]entity.Task, error)

	// Replace atomically swaps the user's record set. An empty or nil
	// tasks slice clears all records held for the user.
	Replace(ctx context.Context, userID int64, tasks []entity.Task) error
}
