package notify

import (
	"errors"
	"sync"
	"time"
)

type breakerState int

const (
	stateClosed breakerState = iota
	stateOpen
	stateHalfOpen
)

var errDeliveryOpen = errors.New("notification delivery circuit is open")

// breaker guards the delivery sink: after maxFailures failed deliveries
// inside the window it stops calling out for the timeout duration, then
// lets a single probe through.
type breaker struct {
	maxFailures     int
	window          time.Duration
	timeout         time.Duration
	failures        []time.Time
	lastFailureTime time.Time
	state           breakerState
	mu              sync.Mutex
}

func newBreaker(maxFailures int, timeout, window time.Duration) *breaker {
	return &breaker{
		maxFailures: maxFailures,
		timeout:     timeout,
		window:      window,
		state:       stateClosed,
		failures:    make([]time.Time, 0),
	}
}

func (b *breaker) execute(deliver func() error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == stateOpen {
		if time.Since(b.lastFailureTime) < b.timeout {
			return errDeliveryOpen
		}
		b.state = stateHalfOpen
		b.failures = b.failures[:0]
	}

	err := deliver()

	if err != nil {
		now := time.Now()
		b.lastFailureTime = now
		b.failures = append(b.failures, now)
		b.dropOldFailures(now)

		if len(b.failures) > b.maxFailures || b.state == stateHalfOpen {
			b.state = stateOpen
		}
		return err
	}

	b.dropOldFailures(time.Now())
	if b.state == stateHalfOpen {
		b.state = stateClosed
		b.failures = b.failures[:0]
	}
	return nil
}

func (b *breaker) dropOldFailures(now time.Time) {
	cutoff := now.Add(-b.window)
	kept := b.failures[:0]
	for _, t := range b.failures {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	b.failures = kept
}
