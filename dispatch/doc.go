/*
Package dispatch wraps a matched target method with pre-call and
post-call hooks, threading opaque interception state between them.  An
external event source delivers "method entered" events together with a
callback that executes the real method body; the dispatcher resolves the
integration, runs its hooks under the fault barrier, and hands deferred
results to the continuation adapter.  Under every failure mode the
target's observable behavior is unchanged from the uninstrumented case.
*/
package dispatch
