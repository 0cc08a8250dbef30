package replica

import (
	"context"
	"fmt"

	"tasksearch/domain/entity"
	"tasksearch/domain/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// postgresRepository stores the replica in the task_replica table. Replace
// runs a single transaction (delete + batch insert) so readers observe one
// generation or the other; row locks are scoped to the user's rows, so
// replaces for distinct users proceed concurrently.
type postgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a PostgreSQL-backed replica repository
func NewPostgresRepository(db *pgxpool.Pool) repository.ReplicaRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Query(ctx context.Context, userID int64, match repository.Predicate) ([]entity.Task, error) {
	query := `
		SELECT id, title, description, status, priority, user_id,
		       deadline, created_at, updated_at
		FROM task_replica
		WHERE user_id = $1
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query replica: %w", err)
	}
	defer rows.Close()

	result := []entity.Task{}
	for rows.Next() {
		var t entity.Task
		err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
			&t.UserID, &t.Deadline, &t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan replica row: %w", err)
		}
		if match == nil || match(&t) {
			result = append(result, t)
		}
	}

	return result, rows.Err()
}

func (r *postgresRepository) Replace(ctx context.Context, userID int64, tasks []entity.Task) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM task_replica WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear replica: %w", err)
	}

	if len(tasks) > 0 {
		rows := make([][]interface{}, len(tasks))
		for i, t := range tasks {
			rows[i] = []interface{}{
				t.ID, t.Title, t.Description, t.Status, t.Priority,
				t.UserID, t.Deadline, t.CreatedAt, t.UpdatedAt,
			}
		}

		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"task_replica"},
			[]string{"id", "title", "description", "status", "priority", "user_id", "deadline", "created_at", "updated_at"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("insert replica: %w", err)
		}
	}

	return tx.Commit(ctx)
}
