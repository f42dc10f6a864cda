package deferred

import (
	"context"
	"sync"

	"github.com/callhook/callhook/outcome"
)

// Value represents a deferred completion:  an operation whose terminal
// Outcome arrives later, on some other goroutine.  Implementations must
// complete at most once.
type Value interface {
	// OnComplete registers a continuation to run when the operation
	// completes.  If completion has already occurred, the continuation
	// runs synchronously on the calling goroutine; otherwise it runs on
	// the goroutine that completes the operation.  Registration never
	// blocks and never polls.  Each continuation runs exactly once.
	OnComplete(func(outcome.Outcome))

	// Done is closed once the operation has completed.
	Done() <-chan struct{}

	// Outcome returns the terminal outcome.  The bool result is false
	// until completion.
	Outcome() (outcome.Outcome, bool)
}

// Future is the canonical Value implementation:  a write-once completion
// cell with continuation scheduling.  The zero value is not usable; use
// NewFuture.
type Future struct {
	lock      sync.Mutex
	completed bool
	out       outcome.Outcome
	done      chan struct{}
	continues []func(outcome.Outcome)
}

// NewFuture constructs an incomplete Future.
func NewFuture() *Future {
	return &Future{
		done: make(chan struct{}),
	}
}

// Completed constructs a Future already resolved with the given outcome.
func Completed(o outcome.Outcome) *Future {
	f := NewFuture()
	f.Complete(o)
	return f
}

// Complete resolves this future.  Only the first call has any effect;
// later calls return false and change nothing, so a race between normal
// completion and cancellation yields exactly one terminal outcome.
// Registered continuations run on the calling goroutine, after Done is
// observable as closed.
func (f *Future) Complete(o outcome.Outcome) bool {
	f.lock.Lock()
	if f.completed {
		f.lock.Unlock()
		return false
	}

	f.completed = true
	f.out = o
	continues := f.continues
	f.continues = nil
	close(f.done)
	f.lock.Unlock()

	for _, fn := range continues {
		fn(o)
	}

	return true
}

// Cancel resolves this future with the distinct cancelled outcome.  As
// with Complete, only the first resolution wins.
func (f *Future) Cancel(err error) bool {
	return f.Complete(outcome.Cancelled(err))
}

func (f *Future) OnComplete(fn func(outcome.Outcome)) {
	f.lock.Lock()
	if !f.completed {
		f.continues = append(f.continues, fn)
		f.lock.Unlock()
		return
	}

	o := f.out
	f.lock.Unlock()
	fn(o)
}

func (f *Future) Done() <-chan struct{} {
	return f.done
}

func (f *Future) Outcome() (outcome.Outcome, bool) {
	f.lock.Lock()
	o, ok := f.out, f.completed
	f.lock.Unlock()
	return o, ok
}

// BindContext arranges for f to resolve as cancelled if ctx is done
// before f completes normally.  This is how an upstream cancellation is
// synthesized into the one terminal outcome hooks are guaranteed to see.
func BindContext(ctx context.Context, f *Future) {
	if ctx.Done() == nil {
		return
	}

	go func() {
		select {
		case <-ctx.Done():
			f.Cancel(ctx.Err())
		case <-f.Done():
		}
	}()
}
