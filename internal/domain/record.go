package domain

import "time"

// Record is a single structured log entry.
// The delivery pipeline never inspects its fields; only the formatter does.
type Record struct {
	// Host is the name of the host that produced the entry.
	// The formatter substitutes its default host when empty.
	Host string

	// ShortMessage is the short descriptive message.
	ShortMessage string

	// FullMessage is an optional long message, e.g. a backtrace.
	FullMessage string

	// Timestamp is the time the entry was produced.
	// The formatter substitutes the formatting time when zero.
	Timestamp time.Time

	// Level is the syslog severity.
	Level Level

	// Fields are additional key/value pairs.
	Fields map[string]any
}

// NewRecord creates a record stamped with the current time.
func NewRecord(level Level, msg string, fields map[string]any) Record {
	return Record{
		ShortMessage: msg,
		Timestamp:    time.Now(),
		Level:        level,
		Fields:       fields,
	}
}
