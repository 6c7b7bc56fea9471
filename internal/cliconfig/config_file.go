package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Host                  string            `toml:"host"`
	Port                  int               `toml:"port"`
	TLS                   *bool             `toml:"tls"`
	TLSServerName         string            `toml:"tls_server_name"`
	TLSCAFile             string            `toml:"tls_ca_file"`
	TLSInsecureSkipVerify *bool             `toml:"tls_insecure_skip_verify"`
	DialTimeout           string            `toml:"dial_timeout"`
	BatchSize             int               `toml:"batch_size"`
	FlushInterval         string            `toml:"flush_interval"`
	ChannelCapacity       int               `toml:"channel_capacity"`
	NullCharacter         *bool             `toml:"null_character"`
	MinLevel              string            `toml:"min_level"`
	AdditionalFields      map[string]string `toml:"additional_fields"`
	LogLevel              string            `toml:"log_level"`
	MetricsAddr           string            `toml:"metrics_addr"`
	File                  string            `toml:"file"`
	FromStart             *bool             `toml:"from_start"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.gelfship/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".gelfship", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("host", fc.Host, &cfg.Host)
	s.setString("tls-server-name", fc.TLSServerName, &cfg.TLSServerName)
	s.setString("tls-ca-file", fc.TLSCAFile, &cfg.TLSCAFile)
	s.setString("min-level", fc.MinLevel, &cfg.MinLevel)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("metrics-addr", fc.MetricsAddr, &cfg.MetricsAddr)
	s.setString("file", fc.File, &cfg.File)

	if err := s.setDuration("flush-interval", fc.FlushInterval, &cfg.FlushInterval); err != nil {
		return err
	}
	if err := s.setDuration("dial-timeout", fc.DialTimeout, &cfg.DialTimeout); err != nil {
		return err
	}

	s.setInt("port", fc.Port, &cfg.Port)
	s.setInt("batch-size", fc.BatchSize, &cfg.BatchSize)
	s.setInt("channel-capacity", fc.ChannelCapacity, &cfg.ChannelCapacity)

	s.setBool("tls", fc.TLS, &cfg.TLS)
	s.setBool("tls-insecure-skip-verify", fc.TLSInsecureSkipVerify, &cfg.TLSInsecureSkipVerify)
	s.setBool("null-character", fc.NullCharacter, &cfg.NullCharacter)
	s.setBool("from-start", fc.FromStart, &cfg.FromStart)

	s.setFields("field", fc.AdditionalFields, &cfg.AdditionalFields)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
