package search

import (
	"strings"

	"tasksearch/domain"
	"tasksearch/domain/entity"
	"tasksearch/domain/repository"
)

// BuildPredicate translates criteria into a conjunction of filter terms.
// The user scope is always applied; every other term is added only when its
// criteria field is set. The result is a pure function of (record, criteria).
func BuildPredicate(criteria *domain.SearchCriteria) repository.Predicate {
	terms := []repository.Predicate{
		func(t *entity.Task) bool { return t.UserID == criteria.UserID },
	}

	if kw := strings.TrimSpace(criteria.Keyword); kw != "" {
		keyword := strings.ToLower(kw)
		terms = append(terms, func(t *entity.Task) bool {
			return strings.Contains(strings.ToLower(t.Title), keyword) ||
				strings.Contains(strings.ToLower(t.Description), keyword)
		})
	}

	if criteria.Status != nil {
		status := *criteria.Status
		terms = append(terms, func(t *entity.Task) bool { return t.Status == status })
	}

	if criteria.Priority != nil {
		priority := *criteria.Priority
		terms = append(terms, func(t *entity.Task) bool { return t.Priority == priority })
	}

	// A record with no deadline never satisfies a deadline bound
	if from := criteria.DeadlineFrom; from != nil {
		lower := *from
		terms = append(terms, func(t *entity.Task) bool {
			return t.Deadline != nil && !t.Deadline.Before(lower)
		})
	}
	if to := criteria.DeadlineTo; to != nil {
		upper := *to
		terms = append(terms, func(t *entity.Task) bool {
			return t.Deadline != nil && !t.Deadline.After(upper)
		})
	}

	if from := criteria.CreatedFrom; from != nil {
		lower := *from
		terms = append(terms, func(t *entity.Task) bool { return !t.CreatedAt.Before(lower) })
	}
	if to := criteria.CreatedTo; to != nil {
		upper := *to
		terms = append(terms, func(t *entity.Task) bool { return !t.CreatedAt.After(upper) })
	}

	return and(terms)
}

func and(terms []repository.Predicate) repository.Predicate {
	return func(t *entity.Task) bool {
		for _, term := range terms {
			if !term(t) {
				return false
			}
		}
		return true
	}
}
