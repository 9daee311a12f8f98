package fallback

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tidefall/fetchable"
)

// CircuitState represents the state of a circuit breaker.
type CircuitState int

const (
	// StateClosed allows fetches to pass through.
	StateClosed CircuitState = iota
	// StateOpen blocks all fetches.
	StateOpen
	// StateHalfOpen allows limited fetches to test recovery.
	StateHalfOpen
)

// String returns the string representation of the circuit state.
func (s CircuitState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreaker guards a capability with the circuit breaker pattern.
// It implements Fetchable[T]; while the circuit is open, Fetch fails
// fast without invoking the wrapped capability.
type CircuitBreaker[T any] struct {
	name  string
	inner fetchable.Fetchable[T]

	// Configuration
	maxFailures      int
	resetTimeout     time.Duration
	halfOpenRequests int

	// State
	mu                sync.RWMutex
	state             CircuitState
	failures          int
	lastFailureTime   time.Time
	halfOpenSuccesses int
	halfOpenFailures  int

	// Metrics
	totalRequests  int64
	totalSuccesses int64
	totalFailures  int64
	circuitOpens   int64
	lastOpenTime   time.Time

	// Callbacks
	onStateChange func(from, to CircuitState)
}

// circuitConfig holds configuration shared across type instantiations.
type circuitConfig struct {
	maxFailures      int
	resetTimeout     time.Duration
	halfOpenRequests int
	onStateChange    func(from, to CircuitState)
}

// CircuitOption configures a circuit breaker.
type CircuitOption func(*circuitConfig)

// WithMaxFailures sets the failure threshold.
func WithMaxFailures(n int) CircuitOption {
	return func(c *circuitConfig) {
		c.maxFailures = n
	}
}

// WithResetTimeout sets the timeout before attempting recovery.
func WithResetTimeout(d time.Duration) CircuitOption {
	return func(c *circuitConfig) {
		c.resetTimeout = d
	}
}

// WithHalfOpenRequests sets the number of test fetches in half-open state.
func WithHalfOpenRequests(n int) CircuitOption {
	return func(c *circuitConfig) {
		c.halfOpenRequests = n
	}
}

// WithStateChangeCallback sets a callback for state transitions.
func WithStateChangeCallback(fn func(from, to CircuitState)) CircuitOption {
	return func(c *circuitConfig) {
		c.onStateChange = fn
	}
}

// NewCircuitBreaker wraps a capability in a circuit breaker.
func NewCircuitBreaker[T any](name string, inner fetchable.Fetchable[T], opts ...CircuitOption) *CircuitBreaker[T] {
	cfg := circuitConfig{
		maxFailures:      5,
		resetTimeout:     30 * time.Second,
		halfOpenRequests: 3,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &CircuitBreaker[T]{
		name:             name,
		inner:            inner,
		maxFailures:      cfg.maxFailures,
		resetTimeout:     cfg.resetTimeout,
		halfOpenRequests: cfg.halfOpenRequests,
		onStateChange:    cfg.onStateChange,
		state:            StateClosed,
	}
}

// Fetch runs the wrapped capability through the circuit breaker.
func (cb *CircuitBreaker[T]) Fetch(ctx context.Context) (T, error) {
	var zero T

	if err := cb.canExecute(); err != nil {
		return zero, err
	}

	result, err := cb.inner.Fetch(ctx)
	cb.recordResult(err == nil)
	return result, err
}

// State returns the current circuit state.
func (cb *CircuitBreaker[T]) State() CircuitState {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// Metrics is a snapshot of circuit breaker counters.
type Metrics struct {
	State          CircuitState
	TotalRequests  int64
	TotalSuccesses int64
	TotalFailures  int64
	CircuitOpens   int64
	LastOpenTime   time.Time
}

// Metrics returns a snapshot of the breaker's counters.
func (cb *CircuitBreaker[T]) Metrics() Metrics {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return Metrics{
		State:          cb.state,
		TotalRequests:  cb.totalRequests,
		TotalSuccesses: cb.totalSuccesses,
		TotalFailures:  cb.totalFailures,
		CircuitOpens:   cb.circuitOpens,
		LastOpenTime:   cb.lastOpenTime,
	}
}

// canExecute checks if the circuit allows execution.
func (cb *CircuitBreaker[T]) canExecute() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.totalRequests++

	switch cb.state {
	case StateClosed:
		return nil

	case StateOpen:
		// Check if we should transition to half-open
		if time.Since(cb.lastFailureTime) > cb.resetTimeout {
			cb.transitionTo(StateHalfOpen)
			return nil
		}
		return fmt.Errorf("circuit breaker %s is open", cb.name)

	case StateHalfOpen:
		// Check if we've hit the limit for half-open requests
		totalHalfOpen := cb.halfOpenSuccesses + cb.halfOpenFailures
		if totalHalfOpen >= cb.halfOpenRequests {
			if cb.halfOpenFailures > 0 {
				// Any failure in half-open goes back to open
				cb.transitionTo(StateOpen)
				return fmt.Errorf("circuit breaker %s is open", cb.name)
			}
			cb.transitionTo(StateClosed)
			return nil
		}
		return nil

	default:
		return fmt.Errorf("circuit breaker %s in unknown state", cb.name)
	}
}

// recordResult updates the circuit breaker state based on the outcome.
func (cb *CircuitBreaker[T]) recordResult(success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if success {
		cb.totalSuccesses++
		cb.onSuccess()
	} else {
		cb.totalFailures++
		cb.onFailure()
	}
}

// onSuccess handles successful execution.
func (cb *CircuitBreaker[T]) onSuccess() {
	switch cb.state {
	case StateClosed:
		// Reset failure count on success
		cb.failures = 0

	case StateHalfOpen:
		cb.halfOpenSuccesses++
		if cb.halfOpenSuccesses >= cb.halfOpenRequests {
			cb.transitionTo(StateClosed)
		}
	}
}

// onFailure handles failed execution.
func (cb *CircuitBreaker[T]) onFailure() {
	cb.lastFailureTime = time.Now()

	switch cb.state {
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.maxFailures {
			cb.transitionTo(StateOpen)
		}

	case StateHalfOpen:
		cb.halfOpenFailures++
		cb.transitionTo(StateOpen)
	}
}

// transitionTo moves the circuit to a new state. Caller must hold the lock.
func (cb *CircuitBreaker[T]) transitionTo(newState CircuitState) {
	if cb.state == newState {
		return
	}

	oldState := cb.state
	cb.state = newState

	switch newState {
	case StateOpen:
		cb.circuitOpens++
		cb.lastOpenTime = time.Now()
	case StateHalfOpen:
		cb.halfOpenSuccesses = 0
		cb.halfOpenFailures = 0
	case StateClosed:
		cb.failures = 0
	}

	if cb.onStateChange != nil {
		cb.onStateChange(oldState, newState)
	}
}
