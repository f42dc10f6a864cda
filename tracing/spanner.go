package tracing

import (
	"time"

	"github.com/callhook/callhook/outcome"
)

// Closer finishes a span with the terminal outcome of its call.  It is
// idempotent:  only the first call records the duration and outcome, and
// every call returns the same Span instance.  This is what lets a span
// survive the race between normal completion and cancellation without
// double-recording.
type Closer func(outcome.Outcome) Span

// Spanner acts as a factory for Spans.  Pre-call hooks start a span and
// carry the Closer to the matching post-call hook as interception state.
type Spanner interface {
	// Start begins a new, unfinished span for the named integration and
	// operation.  The returned Closer must be called to finish the span.
	Start(integration, operation string) Closer
}

type SpannerOption func(*spanner)

// Now sets a now function on a spanner.  If now is nil, this option does nothing.
func Now(now func() time.Time) SpannerOption {
	return func(sp *spanner) {
		if now != nil {
			sp.now = now
		}
	}
}

// Since sets a since function on a spanner.  If since is nil, this option does nothing.
func Since(since func(time.Time) time.Duration) SpannerOption {
	return func(sp *spanner) {
		if since != nil {
			sp.since = since
		}
	}
}

// NewSpanner constructs a new Spanner with the given options
func NewSpanner(o ...SpannerOption) Spanner {
	sp := &spanner{
		now:   time.Now,
		since: time.Since,
	}

	for _, option := range o {
		option(sp)
	}

	return sp
}

type spanner struct {
	now   func() time.Time
	since func(time.Time) time.Duration
}

func (sp *spanner) Start(integration, operation string) Closer {
	s := &span{
		integration: integration,
		operation:   operation,
		start:       sp.now(),
	}

	return func(o outcome.Outcome) Span {
		s.finish(sp.since(s.start), o)
		return s
	}
}
