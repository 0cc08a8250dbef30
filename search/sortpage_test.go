package search

import (
	"errors"
	"testing"

	"tasksearch/domain"
	"tasksearch/domain/entity"
)

func TestResolveSortInvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		direction string
	}{
		{name: "Unknown field", sortBy: "nonexistent", direction: "asc"},
		{name: "Empty field", sortBy: "", direction: "asc"},
		{name: "Unknown direction", sortBy: "created_at", direction: "sideways"},
		{name: "Empty direction", sortBy: "created_at", direction: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveSort(tt.sortBy, tt.direction)
			if !errors.Is(err, domain.ErrInvalidQuery) {
				t.Errorf("ResolveSort(%q, %q) error = %v, expected ErrInvalidQuery", tt.sortBy, tt.direction, err)
			}
		})
	}
}

func TestResolveSortAcceptedFields(t *testing.T) {
	for _, field := range []string{"id", "title", "priority", "status", "deadline", "created_at", "createdAt", "updated_at", "updatedAt"} {
		for _, dir := range []string{"asc", "DESC", "Ascending"} {
			if _, err := ResolveSort(field, dir); err != nil {
				t.Errorf("ResolveSort(%q, %q) unexpected error: %v", field, dir, err)
			}
		}
	}
}

func TestSortByCreatedAt(t *testing.T) {
	tasks := []entity.Task{
		taskFixture(1, func(task *entity.Task) { task.CreatedAt = timeAt(3) }),
		taskFixture(2, func(task *entity.Task) { task.CreatedAt = timeAt(1) }),
		taskFixture(3, func(task *entity.Task) { task.CreatedAt = timeAt(2) }),
	}

	less, err := ResolveSort("created_at", "desc")
	if err != nil {
		t.Fatalf("ResolveSort: %v", err)
	}
	Sort(tasks, less)

	if got := []int64{tasks[0].ID, tasks[1].ID, tasks[2].ID}; got[0] != 1 || got[1] != 3 || got[2] != 2 {
		t.Errorf("descending created_at order = %v, expected [1 3 2]", got)
	}
}

func TestSortTieBreaksByID(t *testing.T) {
	// identical created_at in both directions must yield id-ascending order
	tasks := []entity.Task{
		taskFixture(3, nil),
		taskFixture(1, nil),
		taskFixture(2, nil),
	}

	for _, dir := range []string{"asc", "desc"} {
		less, err := ResolveSort("created_at", dir)
		if err != nil {
			t.Fatalf("ResolveSort: %v", err)
		}
		Sort(tasks, less)
		for i, want := range []int64{1, 2, 3} {
			if tasks[i].ID != want {
				t.Errorf("direction %s: position %d = id %d, expected %d", dir, i, tasks[i].ID, want)
			}
		}
	}
}

func TestSortByPriority(t *testing.T) {
	tasks := []entity.Task{
		taskFixture(1, func(task *entity.Task) { task.Priority = entity.PriorityLow }),
		taskFixture(2, func(task *entity.Task) { task.Priority = entity.PriorityHigh }),
		taskFixture(3, func(task *entity.Task) { task.Priority = entity.PriorityMedium }),
	}

	less, err := ResolveSort("priority", "desc")
	if err != nil {
		t.Fatalf("ResolveSort: %v", err)
	}
	Sort(tasks, less)

	if tasks[0].ID != 2 || tasks[1].ID != 3 || tasks[2].ID != 1 {
		t.Errorf("descending priority order = [%d %d %d], expected [2 3 1]", tasks[0].ID, tasks[1].ID, tasks[2].ID)
	}
}

func TestSortByDeadlineNilsLast(t *testing.T) {
	withEarly := taskFixture(1, func(task *entity.Task) { task.Deadline = timePtr(timeAt(1)) })
	withLate := taskFixture(2, func(task *entity.Task) { task.Deadline = timePtr(timeAt(9)) })
	without := taskFixture(3, nil)

	for _, tt := range []struct {
		dir      string
		expected []int64
	}{
		{dir: "asc", expected: []int64{1, 2, 3}},
		{dir: "desc", expected: []int64{2, 1, 3}},
	} {
		tasks := []entity.Task{without, withLate, withEarly}
		less, err := ResolveSort("deadline", tt.dir)
		if err != nil {
			t.Fatalf("ResolveSort: %v", err)
		}
		Sort(tasks, less)
		for i, want := range tt.expected {
			if tasks[i].ID != want {
				t.Errorf("direction %s: position %d = id %d, expected %d", tt.dir, i, tasks[i].ID, want)
			}
		}
	}
}

func TestPaginate(t *testing.T) {
	tasks := make([]entity.Task, 5)
	for i := range tasks {
		tasks[i] = taskFixture(int64(i+1), nil)
	}

	tests := []struct {
		name     string
		page     int
		size     int
		expected []int64
	}{
		{name: "First page", page: 0, size: 2, expected: []int64{1, 2}},
		{name: "Middle page", page: 1, size: 2, expected: []int64{3, 4}},
		{name: "Short last page", page: 2, size: 2, expected: []int64{5}},
		{name: "Page beyond range is empty", page: 9, size: 2, expected: []int64{}},
		{name: "Whole set in one page", page: 0, size: 20, expected: []int64{1, 2, 3, 4, 5}},
		{name: "Zero size is empty", page: 0, size: 0, expected: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(tasks, tt.page, tt.size)
			if len(got) != len(tt.expected) {
				t.Fatalf("Paginate(page=%d, size=%d) length = %d, expected %d",
					tt.page, tt.size, len(got), len(tt.expected))
			}
			for i, want := range tt.expected {
				if got[i].ID != want {
					t.Errorf("position %d = id %d, expected %d", i, got[i].ID, want)
				}
			}
		})
	}
}
