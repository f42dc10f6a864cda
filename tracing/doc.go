/*
Package tracing is the span capability consumed by integration hooks.  It
deliberately stops at start/close span semantics; the span data model and
transport belong to whatever tracer embeds this library.
*/
package tracing
