package barrier

import (
	"github.com/callhook/callhook/logging"
	"github.com/go-kit/log"
)

// Report describes one absorbed fault for the diagnostics sink.
type Report struct {
	Integration string
	Category    Category
	Err         error
}

// Sink receives fault reports.  Implementations must be safe for
// concurrent use and must not panic; the barrier does not supervise
// its own sink.
type Sink interface {
	ReportFault(Report)
}

// SinkFunc adapts an ordinary function to the Sink interface.
type SinkFunc func(Report)

func (f SinkFunc) ReportFault(r Report) {
	f(r)
}

// NewLoggerSink produces the default Sink, which writes each report to
// the given logger at error level.
func NewLoggerSink(logger log.Logger) Sink {
	if logger == nil {
		logger = logging.DefaultLogger()
	}

	return SinkFunc(func(r Report) {
		logging.Error(logger).Log(
			logging.IntegrationKey(), r.Integration,
			"category", string(r.Category),
			logging.ErrorKey(), r.Err,
			logging.MessageKey(), "hook fault absorbed",
		)
	})
}
