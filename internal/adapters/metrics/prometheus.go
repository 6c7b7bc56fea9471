// Package metrics exposes delivery counters for the shipper through Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gelfship"

// Collector records delivery outcomes reported by the buffer.
// It owns its registry so several shippers can live in one process.
type Collector struct {
	registry    *prometheus.Registry
	constLabels prometheus.Labels

	recordsSent   prometheus.Counter
	flushes       *prometheus.CounterVec
	errorReports  prometheus.Counter
	flushDuration prometheus.Histogram
	pending       prometheus.Gauge
}

// NewCollector creates a collector with its metrics registered.
// constLabels are attached to every metric and may be nil.
func NewCollector(constLabels map[string]string) *Collector {
	c := &Collector{
		registry:    prometheus.NewRegistry(),
		constLabels: constLabels,
		recordsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "records_sent_total",
			Help:        "records in successfully delivered batches, including records the formatter skipped.",
			ConstLabels: constLabels,
		}),
		flushes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "flushes_total",
			Help:        "delivery attempts by result.",
			ConstLabels: constLabels,
		}, []string{"result"}),
		errorReports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "error_reports_total",
			Help:        "times accumulated transport errors were reported.",
			ConstLabels: constLabels,
		}),
		flushDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "flush_duration_seconds",
			Help:        "duration of successful deliveries.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "pending_records",
			Help:        "records retained after the last failed delivery.",
			ConstLabels: constLabels,
		}),
	}

	c.registry.MustRegister(
		c.recordsSent, c.flushes, c.errorReports, c.flushDuration, c.pending,
	)
	return c
}

// TrackQueue exports the event channel depth, sampled on scrape.
func (c *Collector) TrackQueue(length func() int) error {
	return c.registry.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "queued_events",
		Help:        "events waiting in the event channel.",
		ConstLabels: c.constLabels,
	}, func() float64 { return float64(length()) }))
}

// OnSendSuccess counts a delivered batch.
func (c *Collector) OnSendSuccess(records int, duration time.Duration) {
	c.recordsSent.Add(float64(records))
	c.flushes.WithLabelValues("success").Inc()
	c.flushDuration.Observe(duration.Seconds())
	c.pending.Set(0)
}

// OnSendError counts a failed delivery.
func (c *Collector) OnSendError(err error, records int) {
	c.flushes.WithLabelValues("error").Inc()
	c.pending.Set(float64(records))
}

// OnErrorsReported counts an error report.
func (c *Collector) OnErrorsReported(errs []error) {
	c.errorReports.Inc()
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collector's metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
