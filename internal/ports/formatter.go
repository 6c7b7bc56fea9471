package ports

import "github.com/bft-labs/gelfship/internal/domain"

// Formatter renders a record into the bytes written on the wire, including
// any terminator the wire protocol requires.
type Formatter interface {
	Format(r domain.Record) ([]byte, error)
}
