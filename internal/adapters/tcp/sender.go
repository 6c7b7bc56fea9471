// Package tcp delivers record batches over a TCP stream, optionally
// wrapped in TLS.
package tcp

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/bft-labs/gelfship/internal/domain"
	"github.com/bft-labs/gelfship/internal/ports"
)

// Config holds the connection settings of a Sender.
type Config struct {
	Hostname string
	Port     uint16

	// UseTLS negotiates a TLS session before writing.
	UseTLS bool

	// TLSServerName overrides the name used for certificate verification.
	// Defaults to Hostname.
	TLSServerName string

	// TLSCAFile is a PEM bundle used instead of the system roots.
	TLSCAFile string

	TLSInsecureSkipVerify bool

	// DialTimeout bounds connection establishment. Zero means no timeout.
	DialTimeout time.Duration
}

// Sender implements ports.RecordSender. It opens one connection per Send.
type Sender struct {
	address   string
	tlsConfig *tls.Config
	dialer    *net.Dialer
	formatter ports.Formatter
	logger    ports.Logger
}

// NewSender creates a transport sender. It fails only if the TLS CA file
// cannot be loaded.
func NewSender(cfg Config, formatter ports.Formatter, logger ports.Logger) (*Sender, error) {
	s := &Sender{
		address:   net.JoinHostPort(cfg.Hostname, strconv.Itoa(int(cfg.Port))),
		dialer:    &net.Dialer{Timeout: cfg.DialTimeout},
		formatter: formatter,
		logger:    logger,
	}

	if cfg.UseTLS {
		tlsConfig, err := newTLSConfig(cfg)
		if err != nil {
			return nil, err
		}
		s.tlsConfig = tlsConfig
	}

	return s, nil
}

// NewSenderWithTLSConfig creates a transport sender that negotiates TLS
// with the given configuration. A nil tlsConfig means plaintext.
func NewSenderWithTLSConfig(address string, tlsConfig *tls.Config, formatter ports.Formatter, logger ports.Logger) *Sender {
	return &Sender{
		address:   address,
		tlsConfig: tlsConfig,
		dialer:    &net.Dialer{},
		formatter: formatter,
		logger:    logger,
	}
}

// Address returns the remote host:port.
func (s *Sender) Address() string {
	return s.address
}

// Send writes every record that formats cleanly to a fresh connection.
func (s *Sender) Send(ctx context.Context, records []domain.Record) error {
	s.logger.Debug("connecting",
		ports.String("address", s.address),
		ports.Int("records", len(records)),
	)

	conn, err := s.dialer.DialContext(ctx, "tcp", s.address)
	if err != nil {
		return fmt.Errorf("connect %s: %w", s.address, err)
	}
	defer conn.Close()

	if s.tlsConfig != nil {
		tlsConn := tls.Client(conn, s.tlsConfig)
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			return fmt.Errorf("tls handshake %s: %w", s.address, err)
		}
		conn = tlsConn
	}

	for _, r := range records {
		data, err := s.formatter.Format(r)
		if err != nil {
			continue
		}
		if _, err := conn.Write(data); err != nil {
			return fmt.Errorf("write %s: %w", s.address, err)
		}
	}

	return nil
}

func newTLSConfig(cfg Config) (*tls.Config, error) {
	serverName := cfg.TLSServerName
	if serverName == "" {
		serverName = cfg.Hostname
	}

	tlsConfig := &tls.Config{
		ServerName:         serverName,
		InsecureSkipVerify: cfg.TLSInsecureSkipVerify,
		MinVersion:         tls.VersionTLS12,
	}

	if cfg.TLSCAFile != "" {
		pem, err := os.ReadFile(cfg.TLSCAFile)
		if err != nil {
			return nil, fmt.Errorf("read tls ca file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("tls ca file %s: no certificates found", cfg.TLSCAFile)
		}
		tlsConfig.RootCAs = pool
	}

	return tlsConfig, nil
}

var _ ports.RecordSender = (*Sender)(nil)
