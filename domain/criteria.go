package domain

import (
	"time"

	"tasksearch/domain/entity"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	DefaultSortBy        = "created_at"
	DefaultSortDirection = "desc"
)

// SearchCriteria describes one search request. Every filter is independently
// optional; an absent filter contributes no constraint. Page and Size are
// ignored by the non-paginated query path.
type SearchCriteria struct {
	UserID        int64              `json:"userId"`
	Keyword       string             `json:"keyword,omitempty"`
	Status        *entity.TaskStatus `json:"status,omitempty"`
	Priority      *entity.Priority   `json:"priority,omitempty"`
	DeadlineFrom  *time.Time         `json:"deadlineFrom,omitempty"`
	DeadlineTo    *time.Time         `json:"deadlineTo,omitempty"`
	CreatedFrom   *time.Time         `json:"createdFrom,omitempty"`
	CreatedTo     *time.Time         `json:"createdTo,omitempty"`
	SortBy        string             `json:"sortBy,omitempty"`
	SortDirection string             `json:"sortDirection,omitempty"`
	Page          int                `json:"page"`
	Size          int                `json:"size"`
}

// Normalize fills in default sort and page values. It does not validate the
// sort field; unknown fields are rejected by the sort resolver instead of
// being silently defaulted.
func (c *SearchCriteria) Normalize() {
	if c.SortBy == "" {
		c.SortBy = DefaultSortBy
	}
	if c.SortDirection == "" {
		c.SortDirection = DefaultSortDirection
	}
	if c.Page < 0 {
		c.Page = 0
	}
	if c.Size <= 0 {
		c.Size = DefaultPageSize
	}
	if c.Size > MaxPageSize {
		c.Size = MaxPageSize
	}
}
