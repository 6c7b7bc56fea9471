package domain

import "errors"

// Domain errors represent error conditions in the gelfship domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrAlreadyRunning is returned when Start() is called on a running instance.
	ErrAlreadyRunning = errors.New("gelfship: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped instance.
	ErrNotRunning = errors.New("gelfship: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("gelfship: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("gelfship: invalid configuration")

	// ErrChannelClosed is returned when an event is sent after the event
	// channel has been closed. For the buffer it marks normal termination.
	ErrChannelClosed = errors.New("gelfship: event channel closed")
)
