package syncer

import (
	"context"
	"fmt"

	"tasksearch/domain/repository"
	"tasksearch/upstream"

	"go.uber.org/zap"
)

// Service rebuilds a user's replica slice from the authoritative task source
type Service struct {
	source  upstream.TaskSource
	replica repository.ReplicaRepository
	logger  *zap.Logger
}

// NewService creates a sync service
func NewService(source upstream.TaskSource, replica repository.ReplicaRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source:  source,
		replica: replica,
		logger:  logger,
	}
}

// SyncUser fetches the user's current task set and atomically replaces the
// replica slice for that user. When the fetch fails the existing replica is
// left untouched and the error is returned to the caller.
func (s *Service) SyncUser(ctx context.Context, userID int64) error {
	s.logger.Info("starting sync", zap.Int64("user_id", userID))

	tasks, err := s.source.FetchTasksByUser(ctx, userID)
	if err != nil {
		s.logger.Error("sync fetch failed, keeping existing replica",
			zap.Int64("user_id", userID), zap.Error(err))
		return fmt.Errorf("sync user %d: %w", userID, err)
	}

	if err := s.replica.Replace(ctx, userID, tasks); err != nil {
		s.logger.Error("replica replace failed",
			zap.Int64("user_id", userID), zap.Error(err))
		return fmt.Errorf("sync user %d: %w", userID, err)
	}

	s.logger.Info("sync completed",
		zap.Int64("user_id", userID), zap.Int("tasks", len(tasks)))
	return nil
}
