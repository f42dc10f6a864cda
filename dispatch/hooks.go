package dispatch

import (
	"github.com/callhook/callhook/outcome"
	"github.com/callhook/callhook/target"
	"github.com/segmentio/ksuid"
)

// State is the opaque carrier created by a pre-call hook and handed,
// unchanged, to the matching post-call hook.  It typically owns a span
// closer or similar scope handle.  Its lifetime is exactly one logical
// call, including the full asynchronous completion for deferred targets,
// and it is never shared across calls.
type State interface{}

// Call carries everything a hook may inspect about one intercepted call.
// The same Call instance is passed to the pre-call and post-call hooks
// of one logical call.
type Call struct {
	// ID correlates log entries and spans belonging to this call.
	ID ksuid.KSUID

	// Descriptor is the matched integration descriptor.
	Descriptor *target.Descriptor

	// Instance is the receiver of the intercepted method.  May be nil
	// for static-style targets.
	Instance interface{}

	// Args are the live arguments captured at method entry.  Hooks
	// typically read them through a structproxy shape rather than
	// depending on the concrete types.
	Args []interface{}
}

// PreHooker is the capability of running logic before the target's real
// body.  The dispatcher resolves this capability once per descriptor at
// registration; handlers without it simply have no pre-call behavior.
type PreHooker interface {
	// OnBegin runs immediately before the target's real body.  It
	// returns the interception state for this call and whether
	// interception should proceed.  Returning false requests a skip:
	// the real body still executes, but no post-call hook runs and the
	// call is otherwise untouched.  Typical skips are null-like
	// receivers the integration cannot trace.  A non-nil error is a
	// hook fault: it is reported to the fault barrier and the call
	// proceeds uninstrumented.
	OnBegin(call *Call) (State, bool, error)
}

// PostHooker is the capability of observing a synchronous target's
// terminal outcome.
type PostHooker interface {
	// OnEnd runs after the target's real body completes.  It receives
	// the exact outcome the body produced and the exact state OnBegin
	// returned, and may return a transformed outcome.  A transformation
	// that would swallow or replace the target's error is discarded
	// unless the descriptor declares SuppressErrors.  A non-nil error
	// is a hook fault: it is reported to the fault barrier and the
	// target's own outcome stands.
	OnEnd(call *Call, o outcome.Outcome, state State) (outcome.Outcome, error)
}

// AsyncPostHooker is the capability of observing a deferred target's
// completion.  When a target's returned value implements deferred.Value
// and its handler has this capability, the post-call observation is
// scheduled as a continuation instead of running in the synchronous frame.
// A target that fails or otherwise completes without producing a deferred
// value is observed synchronously, so OnBegin's state always reaches
// exactly one completion observation.
type AsyncPostHooker interface {
	// OnCompleted runs when the deferred result resolves, with the
	// terminal outcome, before any downstream consumer can observe the
	// resolution.  Deferred outcomes pass through unmodified, so this
	// capability observes but never transforms.  A non-nil error is
	// reported to the fault barrier; the downstream consumer still
	// sees the original resolution.
	OnCompleted(call *Call, o outcome.Outcome, state State) error
}

// Body is the opaque callback, supplied by the upstream event source,
// that executes the target method's real body.
type Body func() outcome.Outcome

// hookSet is the per-descriptor capability resolution, computed once at
// dispatcher construction so the hot path performs no type inspection.
type hookSet struct {
	pre   PreHooker
	post  PostHooker
	async AsyncPostHooker
}

func (hs hookSet) empty() bool {
	return hs.pre == nil && hs.post == nil && hs.async == nil
}

func resolveHooks(handler interface{}) (hs hookSet) {
	if h, ok := handler.(PreHooker); ok {
		hs.pre = h
	}

	if h, ok := handler.(PostHooker); ok {
		hs.post = h
	}

	if h, ok := handler.(AsyncPostHooker); ok {
		hs.async = h
	}

	return
}
