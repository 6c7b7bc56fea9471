package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (GELFSHIP_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("host", os.Getenv("GELFSHIP_HOST"), &cfg.Host)
	s.setString("tls-server-name", os.Getenv("GELFSHIP_TLS_SERVER_NAME"), &cfg.TLSServerName)
	s.setString("tls-ca-file", os.Getenv("GELFSHIP_TLS_CA_FILE"), &cfg.TLSCAFile)
	s.setString("min-level", os.Getenv("GELFSHIP_MIN_LEVEL"), &cfg.MinLevel)
	s.setString("log-level", os.Getenv("GELFSHIP_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("metrics-addr", os.Getenv("GELFSHIP_METRICS_ADDR"), &cfg.MetricsAddr)
	s.setString("file", os.Getenv("GELFSHIP_FILE"), &cfg.File)

	if err := s.setDuration("flush-interval", os.Getenv("GELFSHIP_FLUSH_INTERVAL"), &cfg.FlushInterval); err != nil {
		return err
	}
	if err := s.setDuration("dial-timeout", os.Getenv("GELFSHIP_DIAL_TIMEOUT"), &cfg.DialTimeout); err != nil {
		return err
	}

	if err := s.setIntFromString("port", os.Getenv("GELFSHIP_PORT"), &cfg.Port); err != nil {
		return err
	}
	if err := s.setIntFromString("batch-size", os.Getenv("GELFSHIP_BATCH_SIZE"), &cfg.BatchSize); err != nil {
		return err
	}
	if err := s.setIntFromString("channel-capacity", os.Getenv("GELFSHIP_CHANNEL_CAPACITY"), &cfg.ChannelCapacity); err != nil {
		return err
	}

	s.setBoolFromString("tls", os.Getenv("GELFSHIP_TLS"), &cfg.TLS)
	s.setBoolFromString("tls-insecure-skip-verify", os.Getenv("GELFSHIP_TLS_INSECURE_SKIP_VERIFY"), &cfg.TLSInsecureSkipVerify)
	s.setBoolFromString("null-character", os.Getenv("GELFSHIP_NULL_CHARACTER"), &cfg.NullCharacter)
	s.setBoolFromString("from-start", os.Getenv("GELFSHIP_FROM_START"), &cfg.FromStart)

	return s.setFieldsFromString("field", os.Getenv("GELFSHIP_ADDITIONAL_FIELDS"), &cfg.AdditionalFields)
}
