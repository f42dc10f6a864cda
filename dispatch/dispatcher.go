package dispatch

import (
	"fmt"

	"github.com/callhook/callhook/barrier"
	"github.com/callhook/callhook/deferred"
	"github.com/callhook/callhook/logging"
	"github.com/callhook/callhook/outcome"
	"github.com/callhook/callhook/target"
	"github.com/callhook/callhook/xmetrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/log"
	"github.com/segmentio/ksuid"
)

// Option is a configuration option for a Dispatcher
type Option func(*Dispatcher)

// WithLogger sets the dispatcher's logger.  A nil logger restores the
// default nop logger.
func WithLogger(logger log.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		} else {
			d.logger = logging.DefaultLogger()
		}
	}
}

// WithBarrier supplies the fault barrier supervising every hook
// invocation.  By default a barrier with default options is used.
func WithBarrier(b barrier.Interface) Option {
	return func(d *Dispatcher) {
		if b != nil {
			d.barrier = b
		}
	}
}

// WithInterceptedCounter supplies the counter of calls that ran hooks.
func WithInterceptedCounter(counter xmetrics.Adder) Option {
	return func(d *Dispatcher) {
		if counter != nil {
			d.intercepted = counter
		} else {
			d.intercepted = discard.NewCounter()
		}
	}
}

// WithPassthroughCounter supplies the counter of matched events that
// bypassed hooks, whether because the handler has no capabilities or the
// breaker has disabled the integration.
func WithPassthroughCounter(counter xmetrics.Adder) Option {
	return func(d *Dispatcher) {
		if counter != nil {
			d.passthrough = counter
		} else {
			d.passthrough = discard.NewCounter()
		}
	}
}

// Dispatcher executes the interception protocol around a matched target
// method:  pre-call hook, real body, then synchronous or deferred
// post-call hook, with every hook frame supervised by the fault barrier.
// A Dispatcher is immutable after New and safe for arbitrary concurrent
// use with no locking on the hot path.
type Dispatcher struct {
	registry    *target.Registry
	barrier     barrier.Interface
	logger      log.Logger
	intercepted xmetrics.Adder
	passthrough xmetrics.Adder
	hooks       map[*target.Descriptor]hookSet
}

// New constructs a Dispatcher over a registry.  Hook capabilities are
// resolved here, once per descriptor, so dispatching performs no type
// inspection per call.
func New(registry *target.Registry, options ...Option) *Dispatcher {
	d := &Dispatcher{
		registry:    registry,
		logger:      logging.DefaultLogger(),
		intercepted: discard.NewCounter(),
		passthrough: discard.NewCounter(),
	}

	for _, o := range options {
		o(d)
	}

	if d.barrier == nil {
		d.barrier = barrier.New(barrier.WithLogger(d.logger))
	}

	d.hooks = make(map[*target.Descriptor]hookSet, len(registry.Descriptors()))
	for _, desc := range registry.Descriptors() {
		d.hooks[desc] = resolveHooks(desc.Handler)
	}

	return d
}

// Dispatch is the entry point for upstream "method entered" events.  The
// event's identity key is resolved against the registry; an unmatched
// event is the expected, frequent case and simply executes the body.
func (d *Dispatcher) Dispatch(library, typeName, methodName string, paramTypes []string, version target.Version, instance interface{}, args []interface{}, body Body) outcome.Outcome {
	desc, ok := d.registry.Resolve(library, typeName, methodName, paramTypes, version)
	if !ok {
		return body()
	}

	return d.Invoke(desc, instance, args, body)
}

// Invoke runs the interception protocol for a resolved descriptor.  The
// real body always executes exactly once, whatever the hooks do, and its
// outcome, including a panic, reaches the caller unaltered except where
// the descriptor declares error suppression.
func (d *Dispatcher) Invoke(desc *target.Descriptor, instance interface{}, args []interface{}, body Body) outcome.Outcome {
	hs := d.hooks[desc]
	if hs.empty() || !d.barrier.Allow(desc.Name) {
		d.passthrough.Add(1.0)
		return body()
	}

	d.intercepted.Add(1.0)

	var (
		call = &Call{
			ID:         ksuid.New(),
			Descriptor: desc,
			Instance:   instance,
			Args:       args,
		}

		state   State
		proceed = true
	)

	if hs.pre != nil {
		ok := d.barrier.Run(desc.Name, barrier.HookFault, func() (err error) {
			state, proceed, err = hs.pre.OnBegin(call)
			return
		})

		// a faulted pre-call hook produced no usable state, so the
		// post-call hook is skipped along with it
		if !ok {
			proceed = false
		}
	}

	out, panicked := runBody(body)

	if !proceed {
		return finish(out, panicked)
	}

	if dv, ok := out.Value().(deferred.Value); ok && hs.async != nil {
		adapted := deferred.Adapt(dv, func(final outcome.Outcome) {
			d.barrier.Run(desc.Name, barrier.HookFault, func() error {
				return hs.async.OnCompleted(call, final, state)
			})
		})

		return outcome.Succeed(adapted)
	}

	if hs.post != nil {
		transformed := out
		ok := d.barrier.Run(desc.Name, barrier.HookFault, func() (err error) {
			transformed, err = hs.post.OnEnd(call, out, state)
			return
		})

		// the original failure always wins unless the integration
		// explicitly declares suppression semantics
		if ok && panicked == nil && (out.Err() == nil || desc.SuppressErrors) {
			out = transformed
		}
	} else if hs.async != nil {
		// the body completed synchronously, so this is the terminal
		// outcome and the async capability observes it here.  the state
		// from OnBegin must reach exactly one completion observation.
		d.barrier.Run(desc.Name, barrier.HookFault, func() error {
			return hs.async.OnCompleted(call, out, state)
		})
	}

	return finish(out, panicked)
}

// runBody executes the target's real body, capturing a panic as a failed
// outcome so hooks can observe it.  The panic value is preserved for
// rethrow after hooks run.
func runBody(body Body) (out outcome.Outcome, panicked interface{}) {
	defer func() {
		if r := recover(); r != nil {
			panicked = r
			out = outcome.Fail(fmt.Errorf("target panic: %v", r))
		}
	}()

	out = body()
	return
}

// finish rethrows a captured target panic so the original caller
// observes exactly what the uninstrumented method would have done.
func finish(out outcome.Outcome, panicked interface{}) outcome.Outcome {
	if panicked != nil {
		panic(panicked)
	}

	return out
}
