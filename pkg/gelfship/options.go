package gelfship

import (
	"github.com/bft-labs/gelfship/pkg/log"
)

// Option configures optional behavior of a Shipper.
type Option func(*options)

type options struct {
	logger       Logger
	sender       RecordSender
	formatter    Formatter
	eventHandler EventHandler
	plugins      []Plugin
	metrics      bool
	metricLabels map[string]string
}

func defaultOptions() options {
	return options{
		logger: log.NewNoopLogger(),
	}
}

// WithLogger sets a custom logger for diagnostic output.
// If not provided, a no-op logger is used (no output), so transport error
// reports are only visible through an EventHandler.
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSender replaces the TCP transport. Connection settings in Config are
// then ignored.
func WithSender(sender RecordSender) Option {
	return func(o *options) {
		o.sender = sender
	}
}

// WithFormatter replaces the GELF formatter used by the TCP transport.
func WithFormatter(formatter Formatter) Option {
	return func(o *options) {
		o.formatter = formatter
	}
}

// WithEventHandler sets a handler for shipper events.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithPlugin registers a plugin to be initialized when the shipper starts.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}

// WithMetrics enables Prometheus metrics, served by Shipper.MetricsHandler.
// labels are attached to every metric and may be nil.
func WithMetrics(labels map[string]string) Option {
	return func(o *options) {
		o.metrics = true
		o.metricLabels = labels
	}
}
