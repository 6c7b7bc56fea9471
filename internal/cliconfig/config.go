package cliconfig

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/gelfship/pkg/gelfship"
)

// Config holds CLI configuration for gelfship.
type Config struct {
	Host string
	Port int

	TLS                   bool
	TLSServerName         string
	TLSCAFile             string
	TLSInsecureSkipVerify bool
	DialTimeout           time.Duration

	BatchSize       int
	FlushInterval   time.Duration
	ChannelCapacity int

	NullCharacter    bool
	MinLevel         string
	AdditionalFields map[string]string

	LogLevel    string
	MetricsAddr string

	// File is followed instead of reading stdin when set.
	File      string
	FromStart bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Port:            gelfship.DefaultPort,
		FlushInterval:   gelfship.DefaultFlushInterval,
		ChannelCapacity: 1000,
		NullCharacter:   true,
		MinLevel:        "debug",
		LogLevel:        "info",
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	if c.BatchSize < 0 {
		return fmt.Errorf("batch size must not be negative")
	}
	if c.FlushInterval <= 0 {
		return fmt.Errorf("flush interval must be positive")
	}
	if c.ChannelCapacity < 1 {
		return fmt.Errorf("channel capacity must be positive")
	}
	if c.DialTimeout < 0 {
		return fmt.Errorf("dial timeout must not be negative")
	}
	if !c.TLS && (c.TLSServerName != "" || c.TLSCAFile != "" || c.TLSInsecureSkipVerify) {
		return fmt.Errorf("tls options require --tls")
	}
	if _, err := gelfship.ParseLevel(c.MinLevel); err != nil {
		return fmt.Errorf("min level: %w", err)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// ShipperConfig converts the CLI configuration into the library configuration.
func (c *Config) ShipperConfig() gelfship.Config {
	var fields map[string]any
	if len(c.AdditionalFields) > 0 {
		fields = make(map[string]any, len(c.AdditionalFields))
		for k, v := range c.AdditionalFields {
			fields[k] = v
		}
	}

	return gelfship.Config{
		Host:                  c.Host,
		Port:                  uint16(c.Port),
		TLS:                   c.TLS,
		TLSServerName:         c.TLSServerName,
		TLSCAFile:             c.TLSCAFile,
		TLSInsecureSkipVerify: c.TLSInsecureSkipVerify,
		DialTimeout:           c.DialTimeout,
		BatchSize:             c.BatchSize,
		FlushInterval:         c.FlushInterval,
		ChannelCapacity:       c.ChannelCapacity,
		DisableNullCharacter:  !c.NullCharacter,
		AdditionalFields:      fields,
		MinLevel:              c.MinLevel,
	}
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setFields merges key/value pairs into dst if flag not changed.
func (s *configSetter) setFields(flag string, value map[string]string, dst *map[string]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	if *dst == nil {
		*dst = make(map[string]string, len(value))
	}
	for k, v := range value {
		(*dst)[k] = v
	}
}

// setIntFromString parses a string to int and sets the destination.
// Zero is applied so it can disable a value set in the config file;
// range checks are left to Validate.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}

// setFieldsFromString parses "k=v,k2=v2" and merges it into dst.
func (s *configSetter) setFieldsFromString(flag, value string, dst *map[string]string) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	fields := make(map[string]string)
	for _, pair := range strings.Split(value, ",") {
		k, v, ok := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return fmt.Errorf("parse %s: %q is not key=value", flag, pair)
		}
		fields[k] = strings.TrimSpace(v)
	}
	s.setFields(flag, fields, dst)
	return nil
}
