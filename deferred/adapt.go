package deferred

import "github.com/callhook/callhook/outcome"

// Adapt returns a Value that resolves with the identical outcome as v,
// but only after observe has seen that outcome and returned.  Downstream
// code handed the adapted value therefore cannot observe resolution
// before the observer, typically a post-call hook closing out a tracing
// scope, has run.
//
// Adapt never blocks the goroutine driving v; the observer runs as a
// continuation on whatever goroutine completes v.  The observer is
// expected to be supervised by the caller:  Adapt itself propagates the
// original outcome unmodified no matter what the observer does.
func Adapt(v Value, observe func(outcome.Outcome)) Value {
	adapted := NewFuture()
	v.OnComplete(func(o outcome.Outcome) {
		observe(o)
		adapted.Complete(o)
	})

	return adapted
}
