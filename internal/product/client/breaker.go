package client

import (
	"errors"
	"sync"
	"time"

	"github.com/tair/catalog-service/pkg/logger"
)

// ErrCircuitOpen is returned without calling the endpoint while its breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitState represents the state of a circuit breaker
type CircuitState string

const (
	StateClosed   CircuitState = "closed"
	StateOpen     CircuitState = "open"
	StateHalfOpen CircuitState = "half-open"
)

// Outcome is how a call result counts toward the breaker.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeFailure
	// OutcomeIgnored leaves the breaker untouched.
	OutcomeIgnored
)

func countEveryError(err error) Outcome {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}

// CircuitBreaker stops calling an endpoint after maxFailures consecutive
// failures and lets one trial call through once cooldown has passed.
type CircuitBreaker struct {
	name              string
	maxFailures       int
	cooldown          time.Duration
	halfOpenSuccesses int

	mu              sync.Mutex
	state           CircuitState
	failures        int
	successCount    int
	lastStateChange time.Time
	now             func() time.Time
	classify        func(error) Outcome
}

func NewCircuitBreaker(name string, maxFailures int, cooldown time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		name:              name,
		maxFailures:       maxFailures,
		cooldown:          cooldown,
		halfOpenSuccesses: 3,
		state:             StateClosed,
		lastStateChange:   time.Now(),
		now:               time.Now,
		classify:          countEveryError,
	}
}

// WithClassifier decides which errors trip the breaker. By default every
// error counts as a failure.
func (cb *CircuitBreaker) WithClassifier(classify func(error) Outcome) *CircuitBreaker {
	cb.classify = classify
	return cb
}

// Call executes fn unless the circuit is open.
func (cb *CircuitBreaker) Call(fn func() error) error {
	cb.mu.Lock()
	if cb.state == StateOpen && cb.now().Sub(cb.lastStateChange) > cb.cooldown {
		cb.transition(StateHalfOpen)
		cb.successCount = 0
	}
	state := cb.state
	cb.mu.Unlock()

	if state == StateOpen {
		return ErrCircuitOpen
	}

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	switch cb.classify(err) {
	case OutcomeFailure:
		cb.onFailure()
	case OutcomeSuccess:
		cb.onSuccess()
	}
	return err
}

func (cb *CircuitBreaker) onFailure() {
	cb.failures++
	switch {
	case cb.state == StateHalfOpen:
		cb.transition(StateOpen)
	case cb.failures >= cb.maxFailures && cb.state == StateClosed:
		cb.transition(StateOpen)
		logger.Logger.Error().
			Str("circuit", cb.name).
			Int("failures", cb.failures).
			Msg("Circuit breaker opened")
	}
}

func (cb *CircuitBreaker) onSuccess() {
	switch cb.state {
	case StateHalfOpen:
		cb.successCount++
		if cb.successCount >= cb.halfOpenSuccesses {
			cb.failures = 0
			cb.transition(StateClosed)
		}
	case StateClosed:
		cb.failures = 0
	}
}

// transition must be called with mu held.
func (cb *CircuitBreaker) transition(to CircuitState) {
	logger.Logger.Info().
		Str("circuit", cb.name).
		Str("from", string(cb.state)).
		Str("to", string(to)).
		Msg("Circuit breaker state changed")
	cb.state = to
	cb.lastStateChange = cb.now()
}

func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}
