package dto

import (
	"fmt"
	"time"

	"tasksearch/domain"
	"tasksearch/domain/entity"
)

// SearchRequest is the wire form of the search criteria. Enum and date
// fields arrive as strings and are parsed into the domain criteria; a parse
// failure is an invalid query, never a silent default.
type SearchRequest struct {
	UserID        int64   `json:"userId" binding:"required,min=1"`
	Keyword       string  `json:"keyword"`
	Status        *string `json:"status"`
	Priority      *string `json:"priority"`
	DeadlineFrom  *string `json:"deadlineFrom"`
	DeadlineTo    *string `json:"deadlineTo"`
	CreatedFrom   *string `json:"createdFrom"`
	CreatedTo     *string `json:"createdTo"`
	SortBy        string  `json:"sortBy"`
	SortDirection string  `json:"sortDirection"`
	Page          int     `json:"page"`
	Size          int     `json:"size"`
}

// ToCriteria converts the request into domain search criteria
func (r *SearchRequest) ToCriteria() (*domain.SearchCriteria, error) {
	criteria := &domain.SearchCriteria{
		UserID:        r.UserID,
		Keyword:       r.Keyword,
		SortBy:        r.SortBy,
		SortDirection: r.SortDirection,
		Page:          r.Page,
		Size:          r.Size,
	}

	if r.Status != nil {
		status, err := entity.ParseStatus(*r.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidQuery, err)
		}
		criteria.Status = &status
	}

	if r.Priority != nil {
		priority, err := entity.ParsePriority(*r.Priority)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidQuery, err)
		}
		criteria.Priority = &priority
	}

	var err error
	if criteria.DeadlineFrom, err = parseTime("deadlineFrom", r.DeadlineFrom); err != nil {
		return nil, err
	}
	if criteria.DeadlineTo, err = parseTime("deadlineTo", r.DeadlineTo); err != nil {
		return nil, err
	}
	if criteria.CreatedFrom, err = parseTime("createdFrom", r.CreatedFrom); err != nil {
		return nil, err
	}
	if criteria.CreatedTo, err = parseTime("createdTo", r.CreatedTo); err != nil {
		return nil, err
	}

	return criteria, nil
}

func parseTime(field string, value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s: %v", domain.ErrInvalidQuery, field, err)
	}
	return &t, nil
}

// PageResponse is one page of search results
type PageResponse struct {
	Content       []entity.Task `json:"content"`
	Page          int           `json:"page"`
	Size          int           `json:"size"`
	TotalElements int64         `json:"totalElements"`
	TotalPages    int           `json:"totalPages"`
}

// NewPageResponse assembles pagination metadata around one page of tasks
func NewPageResponse(tasks []entity.Task, page, size int, total int64) PageResponse {
	totalPages := 0
	if size > 0 {
		totalPages = int(total) / size
		if int(total)%size != 0 {
			totalPages++
		}
	}
	if tasks == nil {
		tasks = []entity.Task{}
	}
	return PageResponse{
		Content:       tasks,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}

// SyncResponse acknowledges a completed sync
type SyncResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
