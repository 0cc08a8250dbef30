package response

import (
	"errors"
	"net/http"

	"tasksearch/domain"

	"github.com/gin-gonic/gin"
)

// Success sends a successful JSON response with status 200
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error maps a domain error onto its HTTP representation
func Error(c *gin.Context, err error) {
	code, status := classify(err)
	c.JSON(status, gin.H{
		"error":   code,
		"message": err.Error(),
	})
}

// ErrorWithMessage sends an error response with a custom message
func ErrorWithMessage(c *gin.Context, httpStatus int, code string, message string) {
	c.JSON(httpStatus, gin.H{
		"error":   code,
		"message": message,
	})
}

func classify(err error) (string, int) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		return "invalid_query", http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return "not_found", http.StatusNotFound
	case errors.Is(err, domain.ErrUpstreamTimeout):
		return "upstream_timeout", http.StatusGatewayTimeout
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return "upstream_unavailable", http.StatusServiceUnavailable
	default:
		return "internal_error", http.StatusInternalServerError
	}
}
