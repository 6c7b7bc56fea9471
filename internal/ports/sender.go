package ports

import (
	"context"

	"github.com/bft-labs/gelfship/internal/domain"
)

// RecordSender transmits a batch of records to the remote collector.
type RecordSender interface {
	// Send delivers records in order over a single connection.
	// Returns nil only if the connection was established and every write
	// succeeded. Records the formatter rejects are skipped and do not cause
	// an error. The records slice must not be retained after Send returns.
	Send(ctx context.Context, records []domain.Record) error
}
