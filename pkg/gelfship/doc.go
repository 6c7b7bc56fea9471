// Package gelfship provides an embeddable GELF log shipper.
//
// Producers hand records to a Shipper from any goroutine. A single buffer
// goroutine batches them and, on every flush, opens one TCP (optionally TLS)
// connection to the collector and writes the batch as GELF JSON messages.
// Delivery is best effort: a failed batch is kept and retried on the next
// flush, and nothing survives a restart.
//
// # Basic Usage
//
//	cfg := gelfship.Config{
//	    Host:          "graylog.internal",
//	    Port:          12201,
//	    FlushInterval: 2 * time.Second,
//	    BatchSize:     100,
//	}
//
//	shipper, err := gelfship.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := shipper.Start(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//
//	_ = shipper.Log(gelfship.LevelInformational, "user logged in",
//	    map[string]any{"user_id": 42})
//
//	if err := shipper.Stop(); err != nil {
//	    log.Printf("shutdown error: %v", err)
//	}
//
// # Flushing
//
// The batch is delivered when the flush timer fires, when BatchSize records
// are buffered, or when [Shipper.ForceFlush] is called. Stop issues a final
// flush unless DisableFlushOnStop is set.
//
// # Backpressure
//
// The event channel is bounded by ChannelCapacity. [Shipper.Enqueue] blocks
// while it is full. There is no other feedback to producers.
//
// # Errors
//
// Transport failures never reach producers. They are accumulated and, every
// five failures, written to the Logger as one warning plus one line per
// error. Use [WithEventHandler] or [WithMetrics] to observe them directly.
//
// # Lifecycle States
//
// A Shipper can be in one of five states: [StateStopped], [StateStarting],
// [StateRunning], [StateStopping], or [StateCrashed]. Use [Shipper.Status]
// to query the current state.
//
// # Plugins
//
// Plugins add inputs. The filetail plugin follows a file and ships each
// appended line:
//
//	import "github.com/bft-labs/gelfship/plugins/filetail"
//
//	shipper, err := gelfship.New(cfg,
//	    filetail.WithFileTail(filetail.Config{Path: "/var/log/app.log"}),
//	)
package gelfship
