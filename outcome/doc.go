/*
Package outcome provides the tri-state result type flowing out of an
instrumented target's real invocation and into post-call hooks.  An Outcome
is either a success carrying the target's return value, a failure carrying
its error, or a cancellation, which is deliberately kept distinct from
generic failure so that hooks can close out tracing scopes appropriately.
*/
package outcome
