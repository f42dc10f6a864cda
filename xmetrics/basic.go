package xmetrics

// Adder represents a metric to which deltas can be added.  Go-kit's
// metrics.Counter, metrics.Gauge, and several prometheus interfaces
// implement this interface.  Interception components accept an Adder
// rather than a concrete metric so tests and embedders can supply
// anything, including discard.NewCounter().
type Adder interface {
	Add(float64)
}

// Setter represents a metric that can receive updates, e.g. a gauge.
type Setter interface {
	Set(float64)
}

// Observer is a type of metric which receives observations, e.g. hook
// latency histograms.
type Observer interface {
	Observe(float64)
}
