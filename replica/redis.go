package replica

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tasksearch/domain/entity"
	"tasksearch/domain/repository"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "replica:user:"

// redisRepository keeps each user's replica as one JSON blob under a single
// key. SET replaces the blob atomically, which gives the per-user
// all-or-nothing replace without any extra locking.
type redisRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisRepository creates a Redis-backed replica repository. A zero ttl
// keeps entries until the next replace.
func NewRedisRepository(rdb *redis.Client, ttl time.Duration) repository.ReplicaRepository {
	return &redisRepository{rdb: rdb, ttl: ttl}
}

func userKey(userID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, userID)
}

func (r *redisRepository) Query(ctx context.Context, userID int64, match repository.Predicate) ([]entity.Task, error) {
	b, err := r.rdb.Get(ctx, userKey(userID)).Bytes()
	if err == redis.Nil {
		return []entity.Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read replica: %w", err)
	}

	var tasks []entity.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		return nil, fmt.Errorf("decode replica: %w", err)
	}

	result := make([]entity.Task, 0, len(tasks))
	for i := range tasks {
		if match == nil || match(&tasks[i]) {
			result = append(result, tasks[i])
		}
	}
	return result, nil
}

func (r *redisRepository) Replace(ctx context.Context, userID int64, tasks []entity.Task) error {
	if tasks == nil {
		tasks = []entity.Task{}
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode replica: %w", err)
	}
	return r.rdb.Set(ctx, userKey(userID), b, r.ttl).Err()
}
