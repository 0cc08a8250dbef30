package circuitbreaker

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// State represents the circuit breaker state
type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half-open"
)

// CircuitBreaker implements the circuit breaker pattern for named units of
// work. Each name tracks its own failure count and state.
type CircuitBreaker struct {
	maxFailures  int
	resetTimeout time.Duration

	failures    map[string]int
	lastFailure map[string]time.Time
	state       map[string]State
	mu          sync.Mutex
	logger      *zap.Logger
}

// NewCircuitBreaker creates a new circuit breaker
func NewCircuitBreaker(maxFailures int, resetTimeout time.Duration, logger *zap.Logger) *CircuitBreaker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CircuitBreaker{
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		failures:     make(map[string]int),
		lastFailure:  make(map[string]time.Time),
		state:        make(map[string]State),
		logger:       logger,
	}
}

// IsOpen checks if the circuit is open for a given name. When the reset
// timeout has elapsed the circuit transitions to half-open and one probe
// request is let through.
func (cb *CircuitBreaker) IsOpen(name string) bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.isOpen(name)
}

// isOpen (internal, must be called with lock held)
func (cb *CircuitBreaker) isOpen(name string) bool {
	state, exists := cb.state[name]
	if !exists || state == StateClosed {
		return false
	}

	if state == StateOpen {
		lastFail, ok := cb.lastFailure[name]
		if ok && time.Since(lastFail) > cb.resetTimeout {
			cb.state[name] = StateHalfOpen
			cb.logger.Info("circuit breaker transitioning to half-open",
				zap.String("breaker", name))
			return false
		}
		return true
	}

	// Half-open state - allow the probe
	return false
}

// Execute runs a function with circuit breaker protection
func (cb *CircuitBreaker) Execute(name string, fn func() error) error {
	cb.mu.Lock()
	if cb.isOpen(name) {
		cb.mu.Unlock()
		return fmt.Errorf("circuit breaker is open: %s", name)
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.recordFailure(name)
	} else {
		cb.recordSuccess(name)
	}

	return err
}

// RecordSuccess records a successful request
func (cb *CircuitBreaker) RecordSuccess(name string) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.recordSuccess(name)
}

// recordSuccess (internal, must be called with lock held)
func (cb *CircuitBreaker) recordSuccess(name string) {
	delete(cb.failures, name)
	delete(cb.lastFailure, name)

	if cb.state[name] == StateHalfOpen {
		cb.state[name] = StateClosed
		cb.logger.Info("circuit breaker closed after successful probe",
			zap.String("breaker", name))
	}
}

// RecordFailure records a failed request
func (cb *CircuitBreaker) RecordFailure(name string) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.recordFailure(name)
}

// recordFailure (internal, must be called with lock held)
func (cb *CircuitBreaker) recordFailure(name string) {
	cb.failures[name]++
	cb.lastFailure[name] = time.Now()

	if cb.failures[name] >= cb.maxFailures || cb.state[name] == StateHalfOpen {
		cb.state[name] = StateOpen
		cb.logger.Warn("circuit breaker opened",
			zap.String("breaker", name),
			zap.Int("failures", cb.failures[name]))
	}
}

// GetState returns the current state for a name
func (cb *CircuitBreaker) GetState(name string) State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if state, ok := cb.state[name]; ok {
		return state
	}
	return StateClosed
}

// Reset clears all state for a name
func (cb *CircuitBreaker) Reset(name string) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	delete(cb.failures, name)
	delete(cb.lastFailure, name)
	delete(cb.state, name)
}
