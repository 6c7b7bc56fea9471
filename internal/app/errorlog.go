package app

// ErrorReportThreshold is the number of accumulated transport errors that
// triggers a report.
const ErrorReportThreshold = 5

// ErrorLog accumulates transport failures until they are reported.
// It is owned by the buffer goroutine and is not safe for concurrent use.
type ErrorLog struct {
	entries   []error
	threshold int
}

// NewErrorLog creates an error log that fills up at threshold entries.
func NewErrorLog(threshold int) *ErrorLog {
	if threshold < 1 {
		threshold = ErrorReportThreshold
	}
	return &ErrorLog{
		entries:   make([]error, 0, threshold),
		threshold: threshold,
	}
}

// Add records err and reports whether the log reached its threshold.
func (l *ErrorLog) Add(err error) bool {
	l.entries = append(l.entries, err)
	return len(l.entries) >= l.threshold
}

// Len returns the number of accumulated errors.
func (l *ErrorLog) Len() int {
	return len(l.entries)
}

// Drain returns the accumulated errors in order and empties the log.
func (l *ErrorLog) Drain() []error {
	out := make([]error, len(l.entries))
	copy(out, l.entries)
	clear(l.entries)
	l.entries = l.entries[:0]
	return out
}
