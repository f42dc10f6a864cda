package dispatch

import "github.com/callhook/callhook/xmetrics"

const (
	InterceptedCounter = "intercepted_call_count"
	PassthroughCounter = "passthrough_call_count"
)

// Metrics is the dispatch module function that adds default dispatch metrics
func Metrics() []xmetrics.Metric {
	return []xmetrics.Metric{
		{
			Name: InterceptedCounter,
			Type: xmetrics.CounterType,
			Help: "the total number of matched calls that ran interception hooks",
		},
		{
			Name: PassthroughCounter,
			Type: xmetrics.CounterType,
			Help: "the total number of matched calls that executed the real body only",
		},
	}
}
