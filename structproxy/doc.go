/*
Package structproxy lets interception code read and write members of
externally-defined types it has no compile-time dependency on.  An
integration declares a Shape, the set of member names and types it
expects, and receives either a live view Proxy or a by-value Snapshot
over whatever concrete object arrives at hook time.

The member resolution for a (shape, concrete type) pair is computed once
and memoized; per-call access walks precomputed field index paths rather
than re-running name lookups.
*/
package structproxy
