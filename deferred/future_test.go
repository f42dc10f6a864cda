package deferred

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/callhook/callhook/outcome"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFutureComplete(t *testing.T) {
	var (
		assert = assert.New(t)
		f      = NewFuture()
	)

	_, ok := f.Outcome()
	assert.False(ok)

	select {
	case <-f.Done():
		assert.Fail("Done must not be closed before completion")
	default:
	}

	assert.True(f.Complete(outcome.Succeed("value")))

	o, ok := f.Outcome()
	assert.True(ok)
	assert.Equal("value", o.Value())

	select {
	case <-f.Done():
	default:
		assert.Fail("Done must be closed after completion")
	}

	// only the first resolution wins
	assert.False(f.Complete(outcome.Fail(errors.New("too late"))))
	o, _ = f.Outcome()
	assert.Equal("value", o.Value())
	assert.Nil(o.Err())
}

func testFutureCancel(t *testing.T) {
	var (
		assert        = assert.New(t)
		expectedError = errors.New("cancel cause")
		f             = NewFuture()
	)

	assert.True(f.Cancel(expectedError))
	assert.False(f.Cancel(nil))

	o, ok := f.Outcome()
	assert.True(ok)
	assert.True(o.IsCancelled())
	assert.False(o.Failed())
	assert.Equal(expectedError, o.Err())
}

func testFutureOnCompleteBefore(t *testing.T) {
	var (
		assert   = assert.New(t)
		f        = NewFuture()
		observed []outcome.Outcome
	)

	f.OnComplete(func(o outcome.Outcome) {
		observed = append(observed, o)
	})

	assert.Empty(observed)
	f.Complete(outcome.Succeed(123))
	assert.Len(observed, 1)
	assert.Equal(123, observed[0].Value())
}

func testFutureOnCompleteAfter(t *testing.T) {
	var (
		assert   = assert.New(t)
		f        = Completed(outcome.Succeed(123))
		observed []outcome.Outcome
	)

	// continuations registered after completion run synchronously
	f.OnComplete(func(o outcome.Outcome) {
		observed = append(observed, o)
	})

	assert.Len(observed, 1)
	assert.Equal(123, observed[0].Value())
}

func testFutureConcurrentComplete(t *testing.T) {
	var (
		assert = assert.New(t)
		f      = NewFuture()

		ready = make(chan struct{})
		wg    sync.WaitGroup

		wins     int32
		ran      int32
	)

	f.OnComplete(func(outcome.Outcome) {
		atomic.AddInt32(&ran, 1)
	})

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-ready
			if f.Complete(outcome.Succeed(i)) {
				atomic.AddInt32(&wins, 1)
			}
		}(i)
	}

	close(ready)
	wg.Wait()

	assert.Equal(int32(1), atomic.LoadInt32(&wins))
	assert.Equal(int32(1), atomic.LoadInt32(&ran))
}

func testFutureBindContext(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		f           = NewFuture()
		ctx, cancel = context.WithCancel(context.Background())
	)

	BindContext(ctx, f)
	cancel()

	select {
	case <-f.Done():
	case <-time.After(time.Second):
		require.Fail("context cancellation did not resolve the future")
	}

	o, ok := f.Outcome()
	assert.True(ok)
	assert.True(o.IsCancelled())
	assert.Equal(context.Canceled, o.Err())
}

func testFutureBindContextNormalCompletion(t *testing.T) {
	var (
		assert      = assert.New(t)
		f           = NewFuture()
		ctx, cancel = context.WithCancel(context.Background())
	)

	defer cancel()
	BindContext(ctx, f)

	f.Complete(outcome.Succeed("done"))
	cancel()

	o, ok := f.Outcome()
	assert.True(ok)
	assert.False(o.IsCancelled())
	assert.Equal("done", o.Value())
}

func TestFuture(t *testing.T) {
	t.Run("Complete", testFutureComplete)
	t.Run("Cancel", testFutureCancel)
	t.Run("OnCompleteBefore", testFutureOnCompleteBefore)
	t.Run("OnCompleteAfter", testFutureOnCompleteAfter)
	t.Run("ConcurrentComplete", testFutureConcurrentComplete)
	t.Run("BindContext", testFutureBindContext)
	t.Run("BindContextNormalCompletion", testFutureBindContextNormalCompletion)
}
