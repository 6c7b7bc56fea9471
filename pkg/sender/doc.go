// Package sender exposes the GELF formatter and the TCP transport so they
// can be used without the full shipper, or wrapped and passed back in with
// gelfship.WithSender.
//
// # Usage
//
//	formatter := sender.NewGELFFormatter(sender.FormatterConfig{
//	    NullCharacter: true,
//	})
//
//	tcp, err := sender.NewTCPSender(sender.TCPConfig{
//	    Hostname: "graylog.internal",
//	    Port:     12201,
//	}, formatter, log.NewNoopLogger())
//	if err != nil {
//	    return err
//	}
//
//	if err := tcp.Send(ctx, records); err != nil {
//	    return err
//	}
//
// # Custom Senders
//
// Implement the Sender interface to deliver to other destinations.
package sender
