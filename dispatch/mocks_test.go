package dispatch

import (
	"github.com/callhook/callhook/outcome"
)

// syncHandler has the pre-call and synchronous post-call capabilities.
type syncHandler struct {
	onBegin func(*Call) (State, bool, error)
	onEnd   func(*Call, outcome.Outcome, State) (outcome.Outcome, error)
}

func (h *syncHandler) OnBegin(call *Call) (State, bool, error) {
	return h.onBegin(call)
}

func (h *syncHandler) OnEnd(call *Call, o outcome.Outcome, state State) (outcome.Outcome, error) {
	return h.onEnd(call, o, state)
}

// asyncHandler has the pre-call and deferred post-call capabilities.
type asyncHandler struct {
	onBegin     func(*Call) (State, bool, error)
	onCompleted func(*Call, outcome.Outcome, State) error
}

func (h *asyncHandler) OnBegin(call *Call) (State, bool, error) {
	return h.onBegin(call)
}

func (h *asyncHandler) OnCompleted(call *Call, o outcome.Outcome, state State) error {
	return h.onCompleted(call, o, state)
}

// inertHandler has no hook capabilities at all.
type inertHandler struct{}
