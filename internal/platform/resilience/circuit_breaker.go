package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState int

const (
	CircuitClosed CircuitState = iota
	CircuitOpen
	CircuitHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// CircuitBreaker guards a roster source: after threshold consecutive failures
// it rejects calls for cooldown, then lets up to probes calls through. The
// circuit closes once every probe succeeded.
type CircuitBreaker struct {
	mu sync.Mutex

	threshold int
	cooldown  time.Duration
	probes    int

	state    CircuitState
	failures int
	openedAt time.Time
	inFlight int
	passed   int

	now      func() time.Time
	onChange func(from, to CircuitState)
}

func NewCircuitBreaker(threshold int, cooldown time.Duration, probes int) *CircuitBreaker {
	return &CircuitBreaker{
		threshold: max(threshold, 1),
		cooldown:  cooldown,
		probes:    max(probes, 1),
		now:       time.Now,
	}
}

// OnStateChange registers fn to run after every transition, outside the lock.
func (b *CircuitBreaker) OnStateChange(fn func(from, to CircuitState)) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
}

// Do runs fn when the breaker allows it and records the outcome. A nil
// breaker always runs fn.
func (b *CircuitBreaker) Do(fn func() error) error {
	if b == nil {
		return fn()
	}
	if err := b.Allow(); err != nil {
		return err
	}
	err := fn()
	b.Record(err)
	return err
}

func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	notify := func() {}
	defer func() {
		b.mu.Unlock()
		notify()
	}()

	if b.state == CircuitOpen {
		if b.now().Sub(b.openedAt) < b.cooldown {
			return ErrCircuitOpen
		}
		notify = b.moveTo(CircuitHalfOpen)
	}
	if b.state == CircuitHalfOpen {
		if b.inFlight+b.passed >= b.probes {
			return ErrCircuitOpen
		}
		b.inFlight++
	}
	return nil
}

// Record reports the outcome of a call admitted by Allow.
func (b *CircuitBreaker) Record(err error) {
	b.mu.Lock()
	notify := func() {}
	defer func() {
		b.mu.Unlock()
		notify()
	}()

	switch b.state {
	case CircuitClosed:
		if err == nil {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.threshold {
			notify = b.moveTo(CircuitOpen)
		}
	case CircuitHalfOpen:
		b.inFlight = max(b.inFlight-1, 0)
		if err != nil {
			notify = b.moveTo(CircuitOpen)
			return
		}
		b.passed++
		if b.passed >= b.probes {
			notify = b.moveTo(CircuitClosed)
		}
	case CircuitOpen:
		if err != nil {
			b.openedAt = b.now()
		}
	}
}

// State reports an expired open circuit as half-open.
func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitOpen && b.now().Sub(b.openedAt) >= b.cooldown {
		return CircuitHalfOpen
	}
	return b.state
}

// moveTo must be called with mu held. The returned func fires the hook.
func (b *CircuitBreaker) moveTo(to CircuitState) func() {
	from := b.state
	b.state = to
	b.failures = 0
	b.inFlight = 0
	b.passed = 0
	if to == CircuitOpen {
		b.openedAt = b.now()
	}

	hook := b.onChange
	if hook == nil || from == to {
		return func() {}
	}
	return func() { hook(from, to) }
}
