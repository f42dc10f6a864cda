package barrier

import "github.com/callhook/callhook/xmetrics"

const (
	FaultCounter             = "hook_fault_count"
	DisabledIntegrationGauge = "disabled_integration_count"
)

// Metrics is the barrier module function that adds default fault metrics
func Metrics() []xmetrics.Metric {
	return []xmetrics.Metric{
		{
			Name: FaultCounter,
			Type: xmetrics.CounterType,
			Help: "the total number of hook faults absorbed by the fault barrier",
		},
		{
			Name: DisabledIntegrationGauge,
			Type: xmetrics.GaugeType,
			Help: "the number of integrations disabled by the circuit breaker",
		},
	}
}
