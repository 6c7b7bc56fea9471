package domain

// Batch is the ordered sequence of records waiting to be delivered.
// Insertion order is arrival order.
type Batch struct {
	records []Record
}

// NewBatch creates a new empty batch.
func NewBatch() *Batch {
	return &Batch{records: make([]Record, 0)}
}

// Add appends a record to the batch.
func (b *Batch) Add(r Record) {
	b.records = append(b.records, r)
}

// Records returns the buffered records in arrival order.
// The returned slice is only valid until the next Add or Reset.
func (b *Batch) Records() []Record {
	return b.records
}

// Size returns the number of records in the batch.
func (b *Batch) Size() int {
	return len(b.records)
}

// Empty returns true if the batch has no records.
func (b *Batch) Empty() bool {
	return len(b.records) == 0
}

// Reset clears the batch for reuse.
func (b *Batch) Reset() {
	clear(b.records)
	b.records = b.records[:0]
}
