package domain

import "errors"

var (
	// ErrInvalidQuery is thrown when search criteria contain an unknown
	// sort field, sort direction, or enum value
	ErrInvalidQuery = errors.New("invalid query")

	// ErrNotFound is thrown when a requested task is not in the replica
	ErrNotFound = errors.New("task not found")

	// ErrUpstreamUnavailable is thrown when the task service cannot be reached
	ErrUpstreamUnavailable = errors.New("task service unavailable")

	// ErrUpstreamTimeout is thrown when a task service call exceeds its deadline
	ErrUpstreamTimeout = errors.New("task service timeout")

	// ErrInternalServerError is thrown when an internal server error occurs
	ErrInternalServerError = errors.New("internal server error")
)
