package xmetrics

import (
	"fmt"

	"github.com/go-kit/kit/metrics"
	gokitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is a Prometheus registry combined with go-kit metric
// construction.  Metrics declared by component Modules are preregistered
// at construction; the New* methods then hand out go-kit wrappers over
// those collectors.  All methods are safe for use during startup only;
// after warm-up the registry is read-only.
type Registry interface {
	prometheus.Gatherer
	prometheus.Registerer

	// NewCounter returns a go-kit Counter over the preregistered
	// counter with the given name.  Unknown names panic, since metric
	// wiring is a startup concern, not a runtime condition.
	NewCounter(name string) metrics.Counter

	// NewGauge returns a go-kit Gauge over the preregistered gauge.
	NewGauge(name string) metrics.Gauge

	// NewHistogram returns a go-kit Histogram over the preregistered histogram.
	NewHistogram(name string) metrics.Histogram
}

type registry struct {
	*prometheus.Registry
	collectors map[string]prometheus.Collector
}

// NewRegistry preregisters every metric declared by the given modules.
// Duplicate names across modules are a configuration error.
func NewRegistry(modules ...Module) (Registry, error) {
	r := &registry{
		Registry:   prometheus.NewRegistry(),
		collectors: make(map[string]prometheus.Collector),
	}

	for _, module := range modules {
		for _, m := range module() {
			if _, ok := r.collectors[m.Name]; ok {
				return nil, fmt.Errorf("duplicate metric: %s", m.Name)
			}

			c, err := NewCollector(m)
			if err != nil {
				return nil, err
			}

			if err := r.Registry.Register(c); err != nil {
				return nil, fmt.Errorf("error while preregistering metric %s: %s", m.Name, err)
			}

			r.collectors[m.Name] = c
		}
	}

	return r, nil
}

func (r *registry) NewCounter(name string) metrics.Counter {
	vec, ok := r.collectors[name].(*prometheus.CounterVec)
	if !ok {
		panic(fmt.Errorf("the metric %s is not a preregistered counter", name))
	}

	return gokitprometheus.NewCounter(vec)
}

func (r *registry) NewGauge(name string) metrics.Gauge {
	vec, ok := r.collectors[name].(*prometheus.GaugeVec)
	if !ok {
		panic(fmt.Errorf("the metric %s is not a preregistered gauge", name))
	}

	return gokitprometheus.NewGauge(vec)
}

func (r *registry) NewHistogram(name string) metrics.Histogram {
	vec, ok := r.collectors[name].(*prometheus.HistogramVec)
	if !ok {
		panic(fmt.Errorf("the metric %s is not a preregistered histogram", name))
	}

	return gokitprometheus.NewHistogram(vec)
}
