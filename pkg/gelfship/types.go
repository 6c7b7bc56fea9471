package gelfship

import (
	"github.com/bft-labs/gelfship/internal/app"
	"github.com/bft-labs/gelfship/internal/domain"
	"github.com/bft-labs/gelfship/internal/ports"
)

// Record is a single structured log entry.
type Record = domain.Record

// Level is a syslog severity.
type Level = domain.Level

// Syslog severities, most severe first.
const (
	LevelEmergency     = domain.LevelEmergency
	LevelAlert         = domain.LevelAlert
	LevelCritical      = domain.LevelCritical
	LevelError         = domain.LevelError
	LevelWarning       = domain.LevelWarning
	LevelNotice        = domain.LevelNotice
	LevelInformational = domain.LevelInformational
	LevelDebug         = domain.LevelDebug
)

// ParseLevel converts a level name to a Level.
func ParseLevel(s string) (Level, error) { return domain.ParseLevel(s) }

// NewRecord creates a record stamped with the current time.
func NewRecord(level Level, msg string, fields map[string]any) Record {
	return domain.NewRecord(level, msg, fields)
}

// Errors returned by a Shipper. Check them with errors.Is.
var (
	ErrAlreadyRunning  = domain.ErrAlreadyRunning
	ErrNotRunning      = domain.ErrNotRunning
	ErrShutdownTimeout = domain.ErrShutdownTimeout
	ErrInvalidConfig   = domain.ErrInvalidConfig
	ErrChannelClosed   = domain.ErrChannelClosed
)

// Logger is the interface for structured logging.
type Logger = ports.Logger

// LogField represents a structured log field.
type LogField = ports.Field

// RecordSender delivers a batch of records to the collector.
type RecordSender = ports.RecordSender

// Formatter renders a record to wire bytes.
type Formatter = ports.Formatter

// State is the lifecycle state of a Shipper.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
	StateCrashed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	return app.State(s).String()
}

func convertState(s app.State) State {
	switch s {
	case app.StateStopped:
		return StateStopped
	case app.StateStarting:
		return StateStarting
	case app.StateRunning:
		return StateRunning
	case app.StateStopping:
		return StateStopping
	case app.StateCrashed:
		return StateCrashed
	default:
		return StateStopped
	}
}
