package tracing

import (
	"sync/atomic"
	"time"

	"github.com/callhook/callhook/outcome"
)

// Span represents one intercepted call from the tracer's point of view.
// Clients create Span objects via a Spanner.  A Span is immutable once
// the closure returned from Spanner.Start has been called.
type Span interface {
	// Integration is the name of the integration that produced this span.
	Integration() string

	// Operation is the name of the traced operation, e.g. "sns.publish".
	Operation() string

	// Start is the time at which the intercepted call began.
	Start() time.Time

	// Duration is how long the call took.  This value is computed once,
	// when the closure from Spanner.Start is called.
	Duration() time.Duration

	// Err is the call's error, taken from the outcome passed to the
	// closing closure.  Nil for successful calls.
	Err() error

	// Cancelled reports whether the call ended in cancellation rather
	// than success or failure.
	Cancelled() bool
}

// span is the internal Span implementation
type span struct {
	integration string
	operation   string
	start       time.Time
	duration    time.Duration
	err         error
	cancelled   bool

	state uint32
}

func (s *span) Integration() string {
	return s.integration
}

func (s *span) Operation() string {
	return s.operation
}

func (s *span) Start() time.Time {
	return s.start
}

func (s *span) Duration() time.Duration {
	return s.duration
}

func (s *span) Err() error {
	return s.err
}

func (s *span) Cancelled() bool {
	return s.cancelled
}

func (s *span) finish(duration time.Duration, o outcome.Outcome) bool {
	if atomic.CompareAndSwapUint32(&s.state, 0, 1) {
		s.duration = duration
		s.err = o.Err()
		s.cancelled = o.IsCancelled()
		return true
	}

	return false
}
