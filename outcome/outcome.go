package outcome

import "context"

const (
	success uint8 = iota
	failure
	cancelled
)

// Outcome represents the terminal result of a single target invocation:
// a value on success, an error on failure, or a distinct cancelled state.
// Outcomes are immutable values and are safe to copy and share.
type Outcome struct {
	kind  uint8
	value interface{}
	err   error
}

// Succeed produces a successful Outcome carrying the given return value,
// which may be nil for void targets.
func Succeed(value interface{}) Outcome {
	return Outcome{kind: success, value: value}
}

// Fail produces a failed Outcome.  A nil error is treated as success,
// so that code translating (value, err) pairs need not branch.
func Fail(err error) Outcome {
	if err == nil {
		return Outcome{kind: success}
	}

	return Outcome{kind: failure, err: err}
}

// Cancelled produces the distinct cancelled Outcome.  If err is nil,
// context.Canceled is used so that Err never returns nil for a
// cancelled outcome.
func Cancelled(err error) Outcome {
	if err == nil {
		err = context.Canceled
	}

	return Outcome{kind: cancelled, err: err}
}

// Value is the target's return value.  It is nil unless this outcome
// is successful.
func (o Outcome) Value() interface{} {
	return o.value
}

// Err is the target's error.  It is nil if and only if this outcome
// is successful.
func (o Outcome) Err() error {
	return o.err
}

// Failed tests if this outcome is a failure.  Cancelled outcomes are
// not failures.
func (o Outcome) Failed() bool {
	return o.kind == failure
}

// IsCancelled tests if this outcome represents cancellation of the
// underlying operation, as opposed to a generic failure.
func (o Outcome) IsCancelled() bool {
	return o.kind == cancelled
}
