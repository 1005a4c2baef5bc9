package infra

import (
	"errors"
	"sync"
	"time"
)

// ── Circuit Breaker ───────────────────────────────────────────────────────────
// Closed → Open → Half-Open breaker guarding optional dependencies. When
// Redis is down every cache call would otherwise wait for a dial timeout;
// with the breaker open they fail immediately and the caller falls back.

type CBState int

const (
	CBClosed   CBState = iota // calls flow
	CBOpen                    // fast-fail
	CBHalfOpen                // one probe at a time
)

func (s CBState) String() string {
	switch s {
	case CBClosed:
		return "closed"
	case CBOpen:
		return "open"
	case CBHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrCircuitOpen is returned by Execute while the breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitBreakerConfig struct {
	FailureThreshold int           // consecutive failures that open the breaker
	OpenTimeout      time.Duration // time spent open before a probe is let through
}

// DefaultCBConfig suits a local cache: trip fast, retry after half a minute.
func DefaultCBConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{FailureThreshold: 3, OpenTimeout: 30 * time.Second}
}

type CircuitBreaker struct {
	mu          sync.Mutex
	state       CBState
	failures    int
	openedAt    time.Time
	probing     bool
	threshold   int
	openTimeout time.Duration
	now         func() time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	return &CircuitBreaker{threshold: cfg.FailureThreshold, openTimeout: cfg.OpenTimeout, now: time.Now}
}

// State reports the current state, moving open → half-open once the
// timeout has elapsed.
func (cb *CircuitBreaker) State() CBState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.stateLocked()
}

func (cb *CircuitBreaker) stateLocked() CBState {
	if cb.state == CBOpen && cb.now().Sub(cb.openedAt) >= cb.openTimeout {
		cb.state = CBHalfOpen
		cb.probing = false
	}
	return cb.state
}

// Execute runs fn unless the breaker is open. In half-open only one caller
// probes; the rest fail fast until the probe settles.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	cb.mu.Lock()
	switch cb.stateLocked() {
	case CBOpen:
		cb.mu.Unlock()
		return ErrCircuitOpen
	case CBHalfOpen:
		if cb.probing {
			cb.mu.Unlock()
			return ErrCircuitOpen
		}
		cb.probing = true
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err != nil {
		cb.failures++
		if cb.state == CBHalfOpen || cb.failures >= cb.threshold {
			cb.state = CBOpen
			cb.openedAt = cb.now()
		}
		cb.probing = false
		return err
	}
	cb.state = CBClosed
	cb.failures = 0
	cb.probing = false
	return nil
}
