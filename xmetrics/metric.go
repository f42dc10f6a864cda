package xmetrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	CounterType   = "counter"
	GaugeType     = "gauge"
	HistogramType = "histogram"

	DefaultNamespace = "callhook"
	DefaultSubsystem = "core"
)

// Module is a function type that returns prebuilt metrics.  Each
// instrumentation component exposes one of these so an embedding process
// can preregister everything in one place.
type Module func() []Metric

// Metric describes a single metric that will be preregistered.  The
// fields loosely correspond with Prometheus' Opts structs.
type Metric struct {
	// Name is the required name of this metric.
	Name string

	// Type is the required type of metric, one of the constants in this package.
	Type string

	// Namespace overrides the registry's default namespace.  Optional.
	Namespace string

	// Subsystem overrides the registry's default subsystem.  Optional.
	Subsystem string

	// Help is the help string.  If unset, the metric's name is used.
	Help string

	// LabelNames are the label names for this metric.  Optional.
	LabelNames []string

	// Buckets describes the observation buckets for a histogram.  Only
	// valid for histogram metrics.
	Buckets []float64
}

// NewCollector creates a Prometheus collector from a Metric descriptor.
func NewCollector(m Metric) (prometheus.Collector, error) {
	if len(m.Name) == 0 {
		return nil, errors.New("a name is required for a metric")
	}

	var (
		namespace = m.Namespace
		subsystem = m.Subsystem
		help      = m.Help
	)

	if len(namespace) == 0 {
		namespace = DefaultNamespace
	}

	if len(subsystem) == 0 {
		subsystem = DefaultSubsystem
	}

	if len(help) == 0 {
		help = m.Name
	}

	switch m.Type {
	case CounterType:
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      m.Name,
			Help:      help,
		}, m.LabelNames), nil

	case GaugeType:
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      m.Name,
			Help:      help,
		}, m.LabelNames), nil

	case HistogramType:
		return prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      m.Name,
			Help:      help,
			Buckets:   m.Buckets,
		}, m.LabelNames), nil

	default:
		return nil, fmt.Errorf("unsupported metric type: %s", m.Type)
	}
}
