package app

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/bft-labs/gelfship/internal/domain"
	"github.com/bft-labs/gelfship/internal/ports"
)

// BufferState is the run state of a Buffer.
type BufferState int32

const (
	BufferIdle BufferState = iota
	BufferRunning
	BufferStopped
)

// String returns a human-readable representation of the state.
func (s BufferState) String() string {
	switch s {
	case BufferIdle:
		return "Idle"
	case BufferRunning:
		return "Running"
	case BufferStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// SendEventEmitter is called after each delivery attempt and each error report.
// Calls happen on the buffer goroutine.
type SendEventEmitter interface {
	OnSendSuccess(records int, duration time.Duration)
	OnSendError(err error, records int)
	OnErrorsReported(errs []error)
}

// Buffer is the single consumer of the event channel. It accumulates records
// and hands them to the sender on flush. The batch and error log are touched
// only by the goroutine running Run.
type Buffer struct {
	events    *EventChannel
	sender    ports.RecordSender
	batchSize int
	logger    ports.Logger
	emitter   SendEventEmitter

	batch  *domain.Batch
	errors *ErrorLog
	state  atomic.Int32
}

// NewBuffer creates a buffer draining events and delivering through sender.
// A positive batchSize flushes as soon as that many records are buffered;
// zero disables size-triggered flushing. emitter may be nil.
func NewBuffer(events *EventChannel, sender ports.RecordSender, batchSize int, logger ports.Logger, emitter SendEventEmitter) *Buffer {
	if batchSize < 0 {
		batchSize = 0
	}
	return &Buffer{
		events:    events,
		sender:    sender,
		batchSize: batchSize,
		logger:    logger,
		emitter:   emitter,
		batch:     domain.NewBatch(),
		errors:    NewErrorLog(ErrorReportThreshold),
	}
}

// State returns the current run state. Safe to call from any goroutine.
func (b *Buffer) State() BufferState {
	return BufferState(b.state.Load())
}

// Run drains the event channel until it is closed and empty.
// Records still buffered at that point are not delivered.
func (b *Buffer) Run() {
	b.state.Store(int32(BufferRunning))
	defer b.state.Store(int32(BufferStopped))

	for {
		ev, ok := b.events.Receive()
		if !ok {
			b.logger.Debug("event channel closed, buffer stopped",
				ports.Int("pending", b.batch.Size()),
			)
			return
		}
		b.handle(ev)
	}
}

func (b *Buffer) handle(ev domain.Event) {
	switch ev.Kind {
	case domain.EventData:
		b.batch.Add(ev.Record)
		if b.batchSize > 0 && b.batch.Size() >= b.batchSize {
			b.flush()
		}
	case domain.EventFlush:
		b.flush()
	}
}

// flush delivers the whole batch. On failure the batch is kept for the next
// flush and the error is accumulated.
func (b *Buffer) flush() {
	if b.batch.Empty() {
		return
	}

	size := b.batch.Size()
	start := time.Now()
	err := b.sender.Send(context.Background(), b.batch.Records())
	duration := time.Since(start)

	if err != nil {
		if b.emitter != nil {
			b.emitter.OnSendError(err, size)
		}
		if b.errors.Add(err) {
			b.report()
		}
		return
	}

	b.batch.Reset()
	if b.emitter != nil {
		b.emitter.OnSendSuccess(size, duration)
	}
}

// report writes the accumulated errors to the diagnostic log and resets them.
func (b *Buffer) report() {
	errs := b.errors.Drain()

	b.logger.Warn("many errors occurred while sending GELF records",
		ports.Int("errors", len(errs)),
		ports.Int("pending", b.batch.Size()),
	)
	for _, err := range errs {
		b.logger.Error(">>", ports.Err(err))
	}

	if b.emitter != nil {
		b.emitter.OnErrorsReported(errs)
	}
}
