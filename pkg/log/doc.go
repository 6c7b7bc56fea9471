// Package log provides a logging abstraction for gelfship components.
//
// This package defines a Logger interface that can be implemented by
// any logging library. Default implementations are provided for zerolog
// and a no-op logger for testing.
//
// # Usage
//
// Use the provided zerolog adapter:
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//
// Or use the no-op logger for testing:
//
//	logger := log.NewNoopLogger()
//
// # Diagnostic Stream
//
// The shipper reports accumulated transport failures through the Logger it
// is given. [NewZerologAdapter] writes to stderr, which is the default
// diagnostic stream; a no-op logger silences those reports entirely.
package log
