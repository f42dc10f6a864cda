package barrier

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/callhook/callhook/logging"
	"github.com/callhook/callhook/structproxy"
	"github.com/callhook/callhook/xmetrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/log"
)

const (
	// DefaultThreshold is the number of consecutive faults after which
	// an integration is disabled.
	DefaultThreshold = 3
)

// Category classifies a fault raised inside a supervised frame.
type Category string

const (
	// BindingFault indicates a structural shape could not be satisfied
	// by a concrete type.
	BindingFault Category = "binding"

	// HookFault indicates an integration's own hook logic failed.
	HookFault Category = "hook"

	// UnexpectedFault covers panics and anything else that is neither a
	// binding nor a declared hook failure.
	UnexpectedFault Category = "unexpected"
)

// Interface supervises hook execution so that a defect in interception
// logic can never abort or alter the target application's control flow.
// It also implements the circuit breaker:  after a threshold of
// consecutive faults, an integration is disabled until process restart.
type Interface interface {
	// Allow tests whether hooks for the given integration may run.  A
	// false return means the breaker has tripped and matching events
	// should execute the real target body only.
	Allow(integration string) bool

	// Run executes f inside a supervised frame.  Any error or panic is
	// caught, classified, reported to the sink, and absorbed; Run then
	// returns false.  A true return means f completed without fault and
	// the integration's consecutive-fault count was reset.
	Run(integration string, category Category, f func() error) bool
}

// Option is a configuration option for a fault barrier
type Option func(*barrier)

// WithThreshold sets the consecutive-fault count at which an integration
// is disabled.  Nonpositive values restore the default.
func WithThreshold(threshold int) Option {
	return func(b *barrier) {
		if threshold > 0 {
			b.threshold = int32(threshold)
		} else {
			b.threshold = DefaultThreshold
		}
	}
}

// WithSink sets the diagnostics sink receiving fault reports.  A nil
// sink restores the default, which logs each report.
func WithSink(sink Sink) Option {
	return func(b *barrier) {
		b.sink = sink
	}
}

// WithLogger sets the logger used for breaker state transitions.
func WithLogger(logger log.Logger) Option {
	return func(b *barrier) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithFaultCounter supplies the counter incremented once per absorbed fault.
func WithFaultCounter(counter xmetrics.Adder) Option {
	return func(b *barrier) {
		if counter != nil {
			b.faults = counter
		} else {
			b.faults = discard.NewCounter()
		}
	}
}

// WithDisabledGauge supplies the gauge tracking how many integrations
// the breaker has disabled.
func WithDisabledGauge(gauge xmetrics.Adder) Option {
	return func(b *barrier) {
		if gauge != nil {
			b.disabled = gauge
		} else {
			b.disabled = discard.NewGauge()
		}
	}
}

// New constructs a fault barrier.  By default the threshold is
// DefaultThreshold, reports are logged, and metrics are discarded.
func New(options ...Option) Interface {
	b := &barrier{
		threshold: DefaultThreshold,
		logger:    logging.DefaultLogger(),
		faults:    discard.NewCounter(),
		disabled:  discard.NewGauge(),
	}

	for _, o := range options {
		o(b)
	}

	if b.sink == nil {
		b.sink = NewLoggerSink(b.logger)
	}

	return b
}

// integrationState tracks breaker state for one integration.  Fields are
// manipulated only via atomics; there is no per-call locking.
type integrationState struct {
	consecutive int32
	disabled    uint32
}

// barrier is the internal Interface implementation
type barrier struct {
	threshold int32
	sink      Sink
	logger    log.Logger
	faults    xmetrics.Adder
	disabled  xmetrics.Adder

	integrations sync.Map
}

func (b *barrier) stateFor(integration string) *integrationState {
	if s, ok := b.integrations.Load(integration); ok {
		return s.(*integrationState)
	}

	s, _ := b.integrations.LoadOrStore(integration, new(integrationState))
	return s.(*integrationState)
}

func (b *barrier) Allow(integration string) bool {
	s, ok := b.integrations.Load(integration)
	if !ok {
		return true
	}

	return atomic.LoadUint32(&s.(*integrationState).disabled) == 0
}

func (b *barrier) Run(integration string, category Category, f func() error) bool {
	err, panicked := supervise(f)
	s := b.stateFor(integration)
	if err == nil {
		atomic.StoreInt32(&s.consecutive, 0)
		return true
	}

	category = classify(err, panicked, category)

	b.faults.Add(1.0)
	b.sink.ReportFault(Report{
		Integration: integration,
		Category:    category,
		Err:         err,
	})

	if atomic.AddInt32(&s.consecutive, 1) >= b.threshold {
		if atomic.CompareAndSwapUint32(&s.disabled, 0, 1) {
			b.disabled.Add(1.0)
			logging.Error(b.logger).Log(
				logging.IntegrationKey(), integration,
				logging.MessageKey(), "integration disabled after repeated faults",
			)
		}
	}

	return false
}

// classify refines the caller's category from the fault itself:  a panic
// is always unexpected, and a structural binding failure is reported as
// such no matter which hook frame surfaced it.
func classify(err error, panicked bool, category Category) Category {
	if panicked {
		return UnexpectedFault
	}

	var bindingErr *structproxy.BindingError
	if errors.As(err, &bindingErr) {
		return BindingFault
	}

	return category
}

// supervise runs f, converting a panic into an error so that nothing
// escapes the frame.
func supervise(f func() error) (err error, panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("hook panic: %v", r)
			panicked = true
		}
	}()

	err = f()
	return
}
