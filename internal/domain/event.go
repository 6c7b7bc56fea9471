package domain

// EventKind tags the variant held by an Event.
type EventKind uint8

const (
	// EventFlush asks the buffer to deliver its batch now.
	EventFlush EventKind = iota
	// EventData carries a record to append to the batch.
	EventData
)

// String returns a human-readable representation of the kind.
func (k EventKind) String() string {
	switch k {
	case EventFlush:
		return "Flush"
	case EventData:
		return "Data"
	default:
		return "Unknown"
	}
}

// Event is a message on the event channel.
// Record is only meaningful when Kind is EventData.
type Event struct {
	Kind   EventKind
	Record Record
}

// FlushEvent returns a flush signal.
func FlushEvent() Event {
	return Event{Kind: EventFlush}
}

// DataEvent wraps a record.
func DataEvent(r Record) Event {
	return Event{Kind: EventData, Record: r}
}
