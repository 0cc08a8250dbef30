package search

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"tasksearch/domain"
	"tasksearch/domain/entity"
)

// LessFunc is a strict weak ordering over task records
type LessFunc func(a, b *entity.Task) bool

// canonical sort field names; camelCase aliases match the original wire format
var sortFields = map[string]string{
	"id":         "id",
	"title":      "title",
	"priority":   "priority",
	"status":     "status",
	"deadline":   "deadline",
	"created_at": "created_at",
	"createdat":  "created_at",
	"updated_at": "updated_at",
	"updatedat":  "updated_at",
}

// ResolveSort builds a total order for the given sort field and direction.
// Ties are always broken by id ascending so result order is deterministic.
// Unknown fields or directions fail with ErrInvalidQuery.
func ResolveSort(sortBy, direction string) (LessFunc, error) {
	field, ok := sortFields[strings.ToLower(strings.TrimSpace(sortBy))]
	if !ok {
		return nil, fmt.Errorf("%w: unknown sort field %q", domain.ErrInvalidQuery, sortBy)
	}

	var descending bool
	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "asc", "ascending":
		descending = false
	case "desc", "descending":
		descending = true
	default:
		return nil, fmt.Errorf("%w: unknown sort direction %q", domain.ErrInvalidQuery, direction)
	}

	cmp := comparator(field)
	nilsLast := field == "deadline"
	return func(a, b *entity.Task) bool {
		// records without a deadline order after all records that have
		// one regardless of direction
		if nilsLast && (a.Deadline == nil || b.Deadline == nil) {
			if a.Deadline == nil && b.Deadline == nil {
				return a.ID < b.ID
			}
			return b.Deadline == nil
		}
		c := cmp(a, b)
		if descending {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	}, nil
}

// comparator returns a three-way comparison for one sort field
func comparator(field string) func(a, b *entity.Task) int {
	switch field {
	case "id":
		return func(a, b *entity.Task) int { return compareInt64(a.ID, b.ID) }
	case "title":
		return func(a, b *entity.Task) int { return strings.Compare(a.Title, b.Title) }
	case "priority":
		return func(a, b *entity.Task) int {
			return a.Priority.Weight() - b.Priority.Weight()
		}
	case "status":
		return func(a, b *entity.Task) int {
			return strings.Compare(string(a.Status), string(b.Status))
		}
	case "deadline":
		// nil deadlines are ranked before this comparison runs
		return func(a, b *entity.Task) int {
			return compareTime(*a.Deadline, *b.Deadline)
		}
	case "updated_at":
		return func(a, b *entity.Task) int { return compareTime(a.UpdatedAt, b.UpdatedAt) }
	default: // created_at
		return func(a, b *entity.Task) int { return compareTime(a.CreatedAt, b.CreatedAt) }
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

// Sort orders tasks in place according to less
func Sort(tasks []entity.Task, less LessFunc) {
	sort.Slice(tasks, func(i, j int) bool {
		return less(&tasks[i], &tasks[j])
	})
}

// Paginate returns the zero-based page slice [page*size, page*size+size),
// clamped to the result length. A page beyond the available range yields an
// empty slice, not an error.
func Paginate(tasks []entity.Task, page, size int) []entity.Task {
	if size <= 0 {
		return []entity.Task{}
	}
	start := page * size
	if start < 0 || start >= len(tasks) {
		return []entity.Task{}
	}
	end := start + size
	if end > len(tasks) {
		end = len(tasks)
	}
	return tasks[start:end]
}
