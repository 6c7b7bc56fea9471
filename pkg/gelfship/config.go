package gelfship

import (
	"fmt"
	"os"
	"time"

	"github.com/bft-labs/gelfship/internal/app"
	"github.com/bft-labs/gelfship/internal/domain"
)

// DefaultPort is the conventional GELF TCP port.
const DefaultPort = 12201

// DefaultFlushInterval is the timer period used when none is configured.
const DefaultFlushInterval = time.Second

// Config holds the settings of a Shipper.
type Config struct {
	// Host is the collector hostname or IP. Required.
	Host string

	// Port is the collector TCP port.
	// Default: 12201
	Port uint16

	// TLS enables a TLS session on every connection.
	TLS bool

	// TLSServerName overrides the name verified against the server certificate.
	TLSServerName string

	// TLSCAFile is a PEM bundle used instead of the system roots.
	TLSCAFile string

	// TLSInsecureSkipVerify disables certificate verification.
	TLSInsecureSkipVerify bool

	// DialTimeout bounds connection establishment. Zero means no timeout.
	DialTimeout time.Duration

	// BatchSize flushes as soon as this many records are buffered.
	// Zero disables size-triggered flushing.
	BatchSize int

	// FlushInterval is the period of the flush timer.
	// Default: 1 second. A negative value disables the timer.
	FlushInterval time.Duration

	// ChannelCapacity bounds the event channel.
	// Default: 1000
	ChannelCapacity int

	// DefaultHost is written into records that carry no host.
	// Default: os.Hostname()
	DefaultHost string

	// DisableNullCharacter stops appending the NUL delimiter to each message.
	DisableNullCharacter bool

	// AdditionalFields are merged into every message.
	AdditionalFields map[string]any

	// MinLevel drops records less severe than this level name
	// (see domain level names). Empty means debug, i.e. keep everything.
	MinLevel string

	// DisableFlushOnStop skips the final flush issued by Stop.
	DisableFlushOnStop bool
}

// SetDefaults fills in zero-valued fields.
func (c *Config) SetDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.FlushInterval == 0 {
		c.FlushInterval = DefaultFlushInterval
	}
	if c.ChannelCapacity == 0 {
		c.ChannelCapacity = app.DefaultChannelCapacity
	}
	if c.DefaultHost == "" {
		if h, err := os.Hostname(); err == nil {
			c.DefaultHost = h
		} else {
			c.DefaultHost = "localhost"
		}
	}
	if c.MinLevel == "" {
		c.MinLevel = domain.LevelDebug.String()
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("%w: host is required", domain.ErrInvalidConfig)
	}
	if c.BatchSize < 0 {
		return fmt.Errorf("%w: batch size must not be negative", domain.ErrInvalidConfig)
	}
	if c.ChannelCapacity < 0 {
		return fmt.Errorf("%w: channel capacity must not be negative", domain.ErrInvalidConfig)
	}
	if c.DialTimeout < 0 {
		return fmt.Errorf("%w: dial timeout must not be negative", domain.ErrInvalidConfig)
	}
	if !c.TLS && (c.TLSCAFile != "" || c.TLSServerName != "" || c.TLSInsecureSkipVerify) {
		return fmt.Errorf("%w: tls options set without tls", domain.ErrInvalidConfig)
	}
	if _, err := domain.ParseLevel(c.MinLevel); err != nil {
		return fmt.Errorf("%w: min level: %v", domain.ErrInvalidConfig, err)
	}
	return nil
}
