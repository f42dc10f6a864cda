/*
Package deferred provides the completion primitive used when an
instrumented target returns before its work finishes.  A Future resolves
exactly once with a tri-state outcome, and Adapt splices a post-call
observer between the original completion and every downstream consumer,
preserving the outcome byte for byte.
*/
package deferred
