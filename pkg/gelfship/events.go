package gelfship

import "time"

// StateChangeEvent describes a lifecycle transition.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// SendSuccessEvent describes a delivered batch.
type SendSuccessEvent struct {
	RecordCount int
	Duration    time.Duration
}

// SendErrorEvent describes a failed delivery. The batch is kept and
// retried on the next flush.
type SendErrorEvent struct {
	Error       error
	RecordCount int
}

// ErrorsReportedEvent is emitted when accumulated transport errors are
// written to the log and reset.
type ErrorsReportedEvent struct {
	Errors []error
}

// EventHandler receives notifications about shipper operations.
// Send events are called synchronously from the buffer goroutine.
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
	OnSendSuccess(event SendSuccessEvent)
	OnSendError(event SendErrorEvent)
	OnErrorsReported(event ErrorsReportedEvent)
}

// BaseEventHandler implements EventHandler with no-ops. Embed it to
// override only the events you need.
type BaseEventHandler struct{}

func (BaseEventHandler) OnStateChange(StateChangeEvent)       {}
func (BaseEventHandler) OnSendSuccess(SendSuccessEvent)       {}
func (BaseEventHandler) OnSendError(SendErrorEvent)           {}
func (BaseEventHandler) OnErrorsReported(ErrorsReportedEvent) {}
