package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tasksearch/domain"
	"tasksearch/domain/entity"

	"go.uber.org/zap"
)

// TaskSource fetches the authoritative task set for a user
type TaskSource interface {
	FetchTasksByUser(ctx context.Context, userID int64) ([]entity.Task, error)
}

// Client is an HTTP TaskSource talking to the task service
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a task service client. timeout bounds each fetch.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// FetchTasksByUser performs GET {base}/api/tasks?userId=N. Timeouts map to
// ErrUpstreamTimeout; transport failures and 5xx map to ErrUpstreamUnavailable.
func (c *Client) FetchTasksByUser(ctx context.Context, userID int64) ([]entity.Task, error) {
	endpoint := c.baseURL + "/api/tasks?userId=" + strconv.FormatInt(userID, 10)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	startTime := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, c.classify(err, userID)
	}
	defer resp.Body.Close()

	c.logger.Debug("fetched tasks from task service",
		zap.Int64("user_id", userID),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", time.Since(startTime)),
	)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: task service returned status %d",
			domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var tasks []entity.Task
	if err := json.NewDecoder(resp.Body).Decode(&tasks); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrUpstreamUnavailable, err)
	}

	return tasks, nil
}

// classify maps a transport error onto the upstream error taxonomy
func (c *Client) classify(err error, userID int64) error {
	var netErr net.Error
	timedOut := errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout())

	if timedOut {
		c.logger.Warn("task service fetch timed out", zap.Int64("user_id", userID), zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrUpstreamTimeout, err)
	}

	c.logger.Warn("task service unreachable", zap.Int64("user_id", userID), zap.Error(err))
	return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
}
