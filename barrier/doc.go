/*
Package barrier isolates the target application from defects in
interception code.  Every hook and proxy binding runs inside a supervised
frame; faults are classified, reported to a diagnostics sink, and
absorbed.  An integration faulting repeatedly is disabled outright, so a
broken hook degrades to pure passthrough instead of per-call overhead
and noise.
*/
package barrier
