package blockpool

type options struct {
	logger  *Logger
	metrics MetricsCollector
}

// Option configures container construction.
//
// Options exist to avoid exploding the API surface with constructor
// variants; the block capacity of a Pool stays a positional argument
// because it is part of the container's identity, not a tunable.
type Option func(*options)

// WithLogger sets the logger used for debug output (block allocations,
// growth events). Defaults to a no-op logger.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics sets the metrics collector.
// Defaults to NoopMetricsCollector.
func WithMetrics(m MetricsCollector) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

func defaultOptions() options {
	return options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
}
