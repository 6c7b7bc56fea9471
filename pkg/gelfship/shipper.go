package gelfship

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bft-labs/gelfship/internal/adapters/gelf"
	"github.com/bft-labs/gelfship/internal/adapters/metrics"
	"github.com/bft-labs/gelfship/internal/adapters/tcp"
	"github.com/bft-labs/gelfship/internal/app"
	"github.com/bft-labs/gelfship/internal/domain"
	"github.com/bft-labs/gelfship/internal/ports"
)

// Shipper batches records and forwards them to a GELF collector.
// Use New() to create an instance, then Start() to begin delivery.
type Shipper struct {
	config    Config
	minLevel  Level
	lifecycle *app.Lifecycle
	sender    ports.RecordSender
	logger    ports.Logger
	emitter   *eventEmitterWrapper
	collector *metrics.Collector
	plugins   []Plugin

	mu          sync.Mutex
	pipe        atomic.Pointer[pipeline]
	pluginsDown *sync.Once
}

// pipeline is the event channel and its consumer for one run.
type pipeline struct {
	events *app.EventChannel
	buffer *app.Buffer
}

// New creates a Shipper with the given configuration.
// The instance is created in StateStopped. Records enqueued before Start
// wait in the event channel.
func New(cfg Config, opts ...Option) (*Shipper, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	minLevel, _ := domain.ParseLevel(cfg.MinLevel)

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	emitter := &eventEmitterWrapper{handler: o.eventHandler}

	var collector *metrics.Collector
	if o.metrics {
		collector = metrics.NewCollector(o.metricLabels)
		emitter.metrics = collector
	}

	sender := o.sender
	if sender == nil {
		formatter := o.formatter
		if formatter == nil {
			formatter = gelf.NewFormatter(gelf.Config{
				Hostname:         cfg.DefaultHost,
				NullCharacter:    !cfg.DisableNullCharacter,
				AdditionalFields: cfg.AdditionalFields,
			})
		}
		tcpSender, err := tcp.NewSender(tcp.Config{
			Hostname:              cfg.Host,
			Port:                  cfg.Port,
			UseTLS:                cfg.TLS,
			TLSServerName:         cfg.TLSServerName,
			TLSCAFile:             cfg.TLSCAFile,
			TLSInsecureSkipVerify: cfg.TLSInsecureSkipVerify,
			DialTimeout:           cfg.DialTimeout,
		}, formatter, o.logger)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
		}
		sender = tcpSender
	}

	s := &Shipper{
		config:    cfg,
		minLevel:  minLevel,
		lifecycle: app.NewLifecycle(o.logger, emitter),
		sender:    sender,
		logger:    o.logger,
		emitter:   emitter,
		collector: collector,
		plugins:   o.plugins,
	}
	s.pipe.Store(s.newPipeline())

	if collector != nil {
		if err := collector.TrackQueue(s.Pending); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Shipper) newPipeline() *pipeline {
	events := app.NewEventChannel(s.config.ChannelCapacity)
	return &pipeline{
		events: events,
		buffer: app.NewBuffer(events, s.sender, s.config.BatchSize, s.logger, s.emitter),
	}
}

// Start begins delivery in the background and returns immediately.
// The provided context bounds the flush timer and the plugins.
func (s *Shipper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}
	if err := s.lifecycle.TransitionTo(app.StateStarting, "Start() called"); err != nil {
		return err
	}

	// a stopped shipper has a closed channel
	if s.pipe.Load().events.Closed() {
		s.pipe.Store(s.newPipeline())
	}
	pipe := s.pipe.Load()
	s.pluginsDown = &sync.Once{}

	runCtx, cancel := context.WithCancel(ctx)
	s.lifecycle.SetCancel(cancel)

	pluginCfg := PluginConfig{
		Logger:      s.logger,
		Producer:    s,
		DefaultHost: s.config.DefaultHost,
	}
	for i, p := range s.plugins {
		if err := p.Initialize(runCtx, pluginCfg); err != nil {
			s.logger.Error("plugin initialization failed",
				ports.String("plugin", p.Name()),
				ports.Err(err))
			s.shutdownPlugins(s.plugins[:i], nil)
			cancel()
			_ = s.lifecycle.TransitionTo(app.StateCrashed, "plugin init failed: "+p.Name())
			return err
		}
		s.logger.Info("plugin initialized", ports.String("plugin", p.Name()))
	}

	if err := s.lifecycle.TransitionTo(app.StateRunning, "buffer starting"); err != nil {
		cancel()
		return err
	}

	once := s.pluginsDown
	s.lifecycle.Go(func() {
		defer func() {
			if r := recover(); r != nil {
				s.crash(pipe.events, once, fmt.Sprintf("buffer panic: %v", r))
			}
		}()
		pipe.buffer.Run()
	})

	app.StartTimer(runCtx, s.config.FlushInterval, pipe.events)

	return nil
}

// crash closes the pipeline after the buffer goroutine panicked.
func (s *Shipper) crash(events *app.EventChannel, once *sync.Once, reason string) {
	s.logger.Error("buffer crashed", ports.String("reason", reason))
	s.lifecycle.Cancel()
	events.Close()
	s.shutdownPlugins(s.plugins, once)
	_ = s.lifecycle.TransitionTo(app.StateCrashed, reason)
}

// Stop shuts down plugins, issues a final flush, closes the event channel and
// waits for the buffer to drain. Records still buffered after the final flush
// (for example because the collector is down) are dropped.
// Waits up to 30 seconds. Returns ErrShutdownTimeout if the buffer did not
// finish in time.
func (s *Shipper) Stop() error {
	s.mu.Lock()
	if !s.lifecycle.CanStop() {
		s.mu.Unlock()
		return domain.ErrNotRunning
	}
	if err := s.lifecycle.TransitionTo(app.StateStopping, "Stop() called"); err != nil {
		s.mu.Unlock()
		return err
	}
	events := s.pipe.Load().events
	once := s.pluginsDown
	s.mu.Unlock()

	s.shutdownPlugins(s.plugins, once)

	if !s.config.DisableFlushOnStop {
		_ = events.ForceFlush()
	}
	s.lifecycle.Cancel()
	events.Close()

	err := s.lifecycle.WaitWithTimeout(app.ShutdownTimeout)
	if err != nil {
		_ = s.lifecycle.TransitionTo(app.StateCrashed, "shutdown timeout")
	} else {
		_ = s.lifecycle.TransitionTo(app.StateStopped, "graceful shutdown")
	}
	return err
}

// shutdownPlugins shuts plugins down in reverse order, at most once per
// once when it is not nil.
func (s *Shipper) shutdownPlugins(plugins []Plugin, once *sync.Once) {
	if once != nil {
		once.Do(func() { s.shutdownPlugins(plugins, nil) })
		return
	}

	ctx := context.Background()
	for i := len(plugins) - 1; i >= 0; i-- {
		p := plugins[i]
		if err := p.Shutdown(ctx); err != nil {
			s.logger.Error("plugin shutdown failed",
				ports.String("plugin", p.Name()),
				ports.Err(err))
			continue
		}
		s.logger.Info("plugin shutdown complete", ports.String("plugin", p.Name()))
	}
}

// Enqueue hands a record to the shipper. It blocks while the event channel
// is full and returns ErrChannelClosed after Stop. Records less severe than
// the configured minimum level are dropped.
func (s *Shipper) Enqueue(r Record) error {
	if !r.Level.Enabled(s.minLevel) {
		return nil
	}
	return s.channel().Enqueue(r)
}

// ForceFlush asks the buffer to deliver its batch now.
// It blocks while the event channel is full.
func (s *Shipper) ForceFlush() error {
	return s.channel().ForceFlush()
}

// Log builds a record stamped with the current time and the default host,
// then enqueues it.
func (s *Shipper) Log(level Level, msg string, fields map[string]any) error {
	r := domain.NewRecord(level, msg, fields)
	r.Host = s.config.DefaultHost
	return s.Enqueue(r)
}

// Pending returns the number of events waiting in the event channel.
func (s *Shipper) Pending() int {
	return s.channel().Len()
}

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (s *Shipper) Status() State {
	return convertState(s.lifecycle.State())
}

// MetricsHandler serves Prometheus metrics. It returns nil unless the
// shipper was created with WithMetrics.
func (s *Shipper) MetricsHandler() http.Handler {
	if s.collector == nil {
		return nil
	}
	return s.collector.Handler()
}

func (s *Shipper) channel() *app.EventChannel {
	return s.pipe.Load().events
}

// eventEmitterWrapper adapts EventHandler and the metrics collector to the
// internal emitter interfaces.
type eventEmitterWrapper struct {
	handler EventHandler
	metrics *metrics.Collector
}

func (e *eventEmitterWrapper) OnStateChange(previous, current app.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Previous: convertState(previous),
		Current:  convertState(current),
		Reason:   reason,
	})
}

func (e *eventEmitterWrapper) OnSendSuccess(records int, duration time.Duration) {
	if e.metrics != nil {
		e.metrics.OnSendSuccess(records, duration)
	}
	if e.handler != nil {
		e.handler.OnSendSuccess(SendSuccessEvent{RecordCount: records, Duration: duration})
	}
}

func (e *eventEmitterWrapper) OnSendError(err error, records int) {
	if e.metrics != nil {
		e.metrics.OnSendError(err, records)
	}
	if e.handler != nil {
		e.handler.OnSendError(SendErrorEvent{Error: err, RecordCount: records})
	}
}

func (e *eventEmitterWrapper) OnErrorsReported(errs []error) {
	if e.metrics != nil {
		e.metrics.OnErrorsReported(errs)
	}
	if e.handler != nil {
		e.handler.OnErrorsReported(ErrorsReportedEvent{Errors: errs})
	}
}
