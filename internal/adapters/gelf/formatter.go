// Package gelf renders records as GELF 1.1 JSON messages.
package gelf

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/bft-labs/gelfship/internal/domain"
)

// Version is the GELF specification version written into every message.
const Version = "1.1"

// ErrEmptyMessage is returned for records without a short message,
// which GELF requires.
var ErrEmptyMessage = errors.New("gelf: empty short message")

// fieldName matches the names GELF allows for additional fields.
var fieldName = regexp.MustCompile(`^[\w.\-]+$`)

// Config holds formatter settings.
type Config struct {
	// Hostname is used for records that carry no host.
	// Defaults to os.Hostname().
	Hostname string

	// NullCharacter appends a NUL byte after each message.
	// GELF over TCP uses it as the frame delimiter.
	NullCharacter bool

	// AdditionalFields are merged into every message.
	// Fields set on the record take precedence.
	AdditionalFields map[string]any
}

// Formatter implements ports.Formatter for GELF.
type Formatter struct {
	hostname      string
	nullCharacter bool
	additional    map[string]any
	now           func() time.Time
}

// NewFormatter creates a GELF formatter.
func NewFormatter(cfg Config) *Formatter {
	host := cfg.Hostname
	if host == "" {
		host = hostname()
	}
	return &Formatter{
		hostname:      host,
		nullCharacter: cfg.NullCharacter,
		additional:    cfg.AdditionalFields,
		now:           time.Now,
	}
}

// Format renders r as a GELF JSON object.
func (f *Formatter) Format(r domain.Record) ([]byte, error) {
	if r.ShortMessage == "" {
		return nil, ErrEmptyMessage
	}

	msg := make(map[string]any, 6+len(f.additional)+len(r.Fields))
	for k, v := range f.additional {
		if key, ok := additionalKey(k); ok {
			msg[key] = v
		}
	}
	for k, v := range r.Fields {
		if key, ok := additionalKey(k); ok {
			msg[key] = v
		}
	}

	host := r.Host
	if host == "" {
		host = f.hostname
	}
	ts := r.Timestamp
	if ts.IsZero() {
		ts = f.now()
	}

	msg["version"] = Version
	msg["host"] = host
	msg["short_message"] = r.ShortMessage
	if r.FullMessage != "" {
		msg["full_message"] = r.FullMessage
	}
	msg["timestamp"] = unixSeconds(ts)
	msg["level"] = int(r.Level)

	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal gelf message: %w", err)
	}
	if f.nullCharacter {
		data = append(data, 0)
	}
	return data, nil
}

// additionalKey returns the prefixed key for an additional field.
// "_id" is reserved by GELF and names outside the allowed charset are dropped.
func additionalKey(k string) (string, bool) {
	if len(k) > 0 && k[0] == '_' {
		k = k[1:]
	}
	if k == "" || k == "id" || !fieldName.MatchString(k) {
		return "", false
	}
	return "_" + k, true
}

// unixSeconds returns t as seconds since epoch with millisecond precision.
func unixSeconds(t time.Time) float64 {
	return float64(t.UnixMilli()) / 1000
}

func hostname() string {
	if h, err := os.Hostname(); err == nil {
		return h
	}
	return "unknown"
}
