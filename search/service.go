package search

import (
	"context"
	"fmt"

	"tasksearch/domain"
	"tasksearch/domain/entity"
	"tasksearch/domain/repository"

	"go.uber.org/zap"
)

const breakerName = "search"

// Breaker is the failure-isolation capability wrapped around replica reads
type Breaker interface {
	Execute(name string, fn func() error) error
}

// Syncer rebuilds a user's replica from the authoritative source
type Syncer interface {
	SyncUser(ctx context.Context, userID int64) error
}

// Service answers queries against the task replica. Every query triggers a
// best-effort sync for the requesting user first, bounding staleness; a
// failed sync degrades to whatever replica state exists instead of failing
// the read. Replica reads run under the circuit breaker and fall back to an
// empty result, never surfacing the underlying failure to the HTTP caller.
type Service struct {
	replica repository.ReplicaRepository
	syncer  Syncer
	breaker Breaker
	logger  *zap.Logger
}

// NewService creates a search service
func NewService(replica repository.ReplicaRepository, syncer Syncer, breaker Breaker, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		replica: replica,
		syncer:  syncer,
		breaker: breaker,
		logger:  logger,
	}
}

// Search runs the full criteria conjunction with sorting and pagination.
// It returns the page slice and the total match count before paging.
// Malformed sort parameters fail with ErrInvalidQuery; read failures yield
// an empty page.
func (s *Service) Search(ctx context.Context, criteria *domain.SearchCriteria) ([]entity.Task, int64, error) {
	criteria.Normalize()

	less, err := ResolveSort(criteria.SortBy, criteria.SortDirection)
	if err != nil {
		return nil, 0, err
	}

	s.bestEffortSync(ctx, criteria.UserID)

	matched := s.runQuery(ctx, criteria.UserID, BuildPredicate(criteria), less)
	total := int64(len(matched))
	return Paginate(matched, criteria.Page, criteria.Size), total, nil
}

// SearchAll runs the full criteria conjunction with sorting but no
// pagination
func (s *Service) SearchAll(ctx context.Context, criteria *domain.SearchCriteria) ([]entity.Task, error) {
	criteria.Normalize()

	less, err := ResolveSort(criteria.SortBy, criteria.SortDirection)
	if err != nil {
		return nil, err
	}

	s.bestEffortSync(ctx, criteria.UserID)

	return s.runQuery(ctx, criteria.UserID, BuildPredicate(criteria), less), nil
}

// FindByUser returns all of a user's tasks in default order
func (s *Service) FindByUser(ctx context.Context, userID int64) ([]entity.Task, error) {
	return s.SearchAll(ctx, &domain.SearchCriteria{UserID: userID})
}

// FindByUserPaged returns one page of a user's tasks in default order
func (s *Service) FindByUserPaged(ctx context.Context, userID int64, page, size int) ([]entity.Task, int64, error) {
	return s.Search(ctx, &domain.SearchCriteria{UserID: userID, Page: page, Size: size})
}

// FindByKeyword returns the user's tasks whose title or description contains
// the keyword, case-insensitively
func (s *Service) FindByKeyword(ctx context.Context, userID int64, keyword string) ([]entity.Task, error) {
	return s.SearchAll(ctx, &domain.SearchCriteria{UserID: userID, Keyword: keyword})
}

// FindByStatus returns the user's tasks with the given status. The status
// string is parsed case-insensitively; unknown values fail with
// ErrInvalidQuery.
func (s *Service) FindByStatus(ctx context.Context, userID int64, status string) ([]entity.Task, error) {
	parsed, err := entity.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidQuery, err)
	}
	return s.SearchAll(ctx, &domain.SearchCriteria{UserID: userID, Status: &parsed})
}

// FindByPriority returns the user's tasks with the given priority
func (s *Service) FindByPriority(ctx context.Context, userID int64, priority string) ([]entity.Task, error) {
	parsed, err := entity.ParsePriority(priority)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidQuery, err)
	}
	return s.SearchAll(ctx, &domain.SearchCriteria{UserID: userID, Priority: &parsed})
}

// FindByID returns one task scoped to the user, or ErrNotFound
func (s *Service) FindByID(ctx context.Context, userID, taskID int64) (*entity.Task, error) {
	s.bestEffortSync(ctx, userID)

	matched := s.runQuery(ctx, userID, func(t *entity.Task) bool {
		return t.UserID == userID && t.ID == taskID
	}, nil)

	if len(matched) == 0 {
		return nil, domain.ErrNotFound
	}
	return &matched[0], nil
}

// bestEffortSync refreshes the user's replica before a read. A sync failure
// is logged and the read proceeds against the existing state, stale or empty.
func (s *Service) bestEffortSync(ctx context.Context, userID int64) {
	if err := s.syncer.SyncUser(ctx, userID); err != nil {
		s.logger.Warn("sync before query failed, serving existing replica",
			zap.Int64("user_id", userID), zap.Error(err))
	}
}

// runQuery executes a replica read under the circuit breaker. Any failure,
// including an open breaker, collapses to an empty result after being logged.
func (s *Service) runQuery(ctx context.Context, userID int64, match repository.Predicate, less LessFunc) []entity.Task {
	var result []entity.Task

	err := s.breaker.Execute(breakerName, func() error {
		tasks, err := s.replica.Query(ctx, userID, match)
		if err != nil {
			return err
		}
		if less != nil {
			Sort(tasks, less)
		}
		result = tasks
		return nil
	})
	if err != nil {
		s.logger.Error("replica read failed, returning empty result",
			zap.Int64("user_id", userID), zap.Error(err))
		return []entity.Task{}
	}

	if result == nil {
		result = []entity.Task{}
	}
	return result
}
