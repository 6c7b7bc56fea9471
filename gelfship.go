// Package gelfship is a batching GELF log shipper.
//
// The embeddable API lives in github.com/bft-labs/gelfship/pkg/gelfship;
// this package re-exports its entry points for convenience.
//
//	s, err := gelfship.New(gelfship.Config{Host: "graylog.internal"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := s.Start(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Stop()
//
//	_ = s.Log(gelfship.LevelWarning, "cache miss ratio high", nil)
package gelfship

import (
	"github.com/bft-labs/gelfship/pkg/gelfship"
)

// Config holds the settings of a Shipper.
type Config = gelfship.Config

// Shipper batches records and forwards them to a GELF collector.
type Shipper = gelfship.Shipper

// Option configures optional behavior of a Shipper.
type Option = gelfship.Option

// Record is a single structured log entry.
type Record = gelfship.Record

// Level is a syslog severity.
type Level = gelfship.Level

// Syslog severities, most severe first.
const (
	LevelEmergency     = gelfship.LevelEmergency
	LevelAlert         = gelfship.LevelAlert
	LevelCritical      = gelfship.LevelCritical
	LevelError         = gelfship.LevelError
	LevelWarning       = gelfship.LevelWarning
	LevelNotice        = gelfship.LevelNotice
	LevelInformational = gelfship.LevelInformational
	LevelDebug         = gelfship.LevelDebug
)

// New creates a Shipper. See gelfship.New in pkg/gelfship.
func New(cfg Config, opts ...Option) (*Shipper, error) {
	return gelfship.New(cfg, opts...)
}
