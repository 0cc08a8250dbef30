package replica

import (
	"context"
	"sync"
	"testing"
	"time"

	"tasksearch/domain/entity"
)

func task(id, userID int64) entity.Task {
	now := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	return entity.Task{
		ID:        id,
		Title:     "Task",
		Status:    entity.TaskStatusTodo,
		Priority:  entity.PriorityMedium,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestMemoryReplaceAndQuery(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.Replace(ctx, 7, []entity.Task{task(1, 7), task(2, 7)}); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	got, err := repo.Query(ctx, 7, nil)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Query returned %d records, expected 2", len(got))
	}
}

func TestMemoryReplaceWithEmptyClears(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.Replace(ctx, 7, []entity.Task{task(1, 7)}); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if err := repo.Replace(ctx, 7, nil); err != nil {
		t.Fatalf("Replace with nil: %v", err)
	}

	got, err := repo.Query(ctx, 7, func(*entity.Task) bool { return true })
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Query after clearing replace returned %d records, expected 0", len(got))
	}
}

func TestMemoryUsersAreIsolated(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.Replace(ctx, 7, []entity.Task{task(1, 7)}); err != nil {
		t.Fatalf("Replace user 7: %v", err)
	}
	if err := repo.Replace(ctx, 8, []entity.Task{task(2, 8), task(3, 8)}); err != nil {
		t.Fatalf("Replace user 8: %v", err)
	}
	if err := repo.Replace(ctx, 8, nil); err != nil {
		t.Fatalf("Clear user 8: %v", err)
	}

	got, err := repo.Query(ctx, 7, nil)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("clearing user 8 touched user 7: got %d records, expected 1", len(got))
	}
}

func TestMemoryQueryAppliesPredicate(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	done := task(2, 7)
	done.Status = entity.TaskStatusDone
	if err := repo.Replace(ctx, 7, []entity.Task{task(1, 7), done}); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	got, err := repo.Query(ctx, 7, func(t *entity.Task) bool { return t.Status == entity.TaskStatusDone })
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("predicate query = %v, expected only id 2", got)
	}
}

func TestMemoryQueryNeverObservesPartialReplace(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	generationA := []entity.Task{task(1, 7), task(2, 7)}
	generationB := []entity.Task{task(3, 7), task(4, 7), task(5, 7)}

	if err := repo.Replace(ctx, 7, generationA); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			if i := time.Now().UnixNano(); i%2 == 0 {
				repo.Replace(ctx, 7, generationA)
			} else {
				repo.Replace(ctx, 7, generationB)
			}
		}
	}()

	for i := 0; i < 1000; i++ {
		got, err := repo.Query(ctx, 7, nil)
		if err != nil {
			t.Fatalf("Query: %v", err)
		}
		if len(got) != len(generationA) && len(got) != len(generationB) {
			t.Fatalf("observed mixed generation of %d records", len(got))
		}
	}

	close(stop)
	wg.Wait()
}
