package snspublish

import (
	"errors"

	"github.com/callhook/callhook/dispatch"
	"github.com/callhook/callhook/logging"
	"github.com/callhook/callhook/outcome"
	"github.com/callhook/callhook/structproxy"
	"github.com/callhook/callhook/target"
	"github.com/callhook/callhook/tracing"
	"github.com/go-kit/log"
)

const (
	// IntegrationName identifies this integration in descriptors, fault
	// reports, and spans.
	IntegrationName = "sns-publish"

	// OperationName is the span operation for an intercepted publish.
	OperationName = "sns.Publish"
)

// publishInputShape names the request members this integration reads.
// The concrete input type comes from whatever SDK build the traced
// process linked; only this structural description is compiled in.
var publishInputShape = structproxy.NewShape(
	"sns.PublishInput",
	structproxy.MemberOf[*string]("TopicArn"),
	structproxy.MemberOf[*string]("Message"),
)

// Option is a configuration option for an Integration
type Option func(*Integration)

// WithLogger sets the integration's logger.  A nil logger restores the
// default nop logger.
func WithLogger(logger log.Logger) Option {
	return func(i *Integration) {
		if logger != nil {
			i.logger = logger
		} else {
			i.logger = logging.DefaultLogger()
		}
	}
}

// Integration traces SNS publish calls.  It carries the pre-call and
// synchronous post-call capabilities: a span is opened when the publish
// begins and closed with the call's outcome.
type Integration struct {
	spanner tracing.Spanner
	logger  log.Logger
}

// New constructs an SNS publish integration around a spanner.
func New(spanner tracing.Spanner, options ...Option) *Integration {
	i := &Integration{
		spanner: spanner,
		logger:  logging.DefaultLogger(),
	}

	for _, o := range options {
		o(i)
	}

	return i
}

// Descriptors returns the target table for this integration.  The single
// declared parameter collapses the publish overloads that differ only in
// a trailing cancellation context.
func (i *Integration) Descriptors() []target.Descriptor {
	return []target.Descriptor{
		{
			Name:       IntegrationName,
			Library:    "github.com/aws/aws-sdk-go",
			TypeName:   "SNS",
			MethodName: "Publish",
			ParamTypes: []string{"*sns.PublishInput"},
			MinVersion: target.Version{1},
			Handler:    i,
		},
	}
}

// publishState carries the open span from OnBegin to OnEnd.
type publishState struct {
	closer tracing.Closer
	topic  string
}

// OnBegin snapshots the publish input and opens the span.  A request the
// shape cannot bind to is returned as an error so the fault barrier can
// classify it; a missing or nil input, typed or not, simply skips
// interception and lets the SDK produce its own validation error.
func (i *Integration) OnBegin(call *dispatch.Call) (dispatch.State, bool, error) {
	if len(call.Args) == 0 || call.Args[0] == nil {
		return nil, false, nil
	}

	input, err := structproxy.GetSnapshot(publishInputShape, call.Args[0])
	if errors.Is(err, structproxy.ErrNilInstance) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}

	state := &publishState{
		closer: i.spanner.Start(IntegrationName, OperationName),
	}

	if v, ok := input.Get("TopicArn"); ok {
		if arn, ok := v.(*string); ok && arn != nil {
			state.topic = *arn
		}
	}

	i.logger.Log(
		logging.IntegrationKey(), IntegrationName,
		logging.CallKey(), call.ID,
		logging.MessageKey(), "publish intercepted",
		"topic", state.topic,
	)

	return state, true, nil
}

// OnEnd closes the span with the target's outcome, which always passes
// through unmodified.
func (i *Integration) OnEnd(call *dispatch.Call, o outcome.Outcome, state dispatch.State) (outcome.Outcome, error) {
	ps := state.(*publishState)
	span := ps.closer(o)

	if err := span.Err(); err != nil {
		i.logger.Log(
			logging.IntegrationKey(), IntegrationName,
			logging.CallKey(), call.ID,
			logging.MessageKey(), "publish failed",
			logging.ErrorKey(), err,
			"topic", ps.topic,
			"duration", span.Duration(),
		)
	}

	return o, nil
}
