package sender

import (
	"github.com/bft-labs/gelfship/internal/adapters/gelf"
	"github.com/bft-labs/gelfship/internal/adapters/tcp"
	"github.com/bft-labs/gelfship/internal/ports"
	"github.com/bft-labs/gelfship/pkg/log"
)

// Sender delivers a batch of records. A returned error means the batch as
// a whole was not delivered and may be retried.
type Sender = ports.RecordSender

// Formatter renders a record to wire bytes.
type Formatter = ports.Formatter

// TCPConfig holds the connection settings of a TCP sender.
type TCPConfig = tcp.Config

// FormatterConfig holds the settings of the GELF formatter.
type FormatterConfig = gelf.Config

// ErrEmptyMessage is returned by the GELF formatter for records without a
// short message.
var ErrEmptyMessage = gelf.ErrEmptyMessage

// NewGELFFormatter creates a GELF 1.1 JSON formatter.
func NewGELFFormatter(cfg FormatterConfig) Formatter {
	return gelf.NewFormatter(cfg)
}

// NewTCPSender creates a sender that opens one TCP (optionally TLS)
// connection per batch.
func NewTCPSender(cfg TCPConfig, formatter Formatter, logger log.Logger) (Sender, error) {
	s, err := tcp.NewSender(cfg, formatter, logger)
	if err != nil {
		return nil, err
	}
	return s, nil
}
