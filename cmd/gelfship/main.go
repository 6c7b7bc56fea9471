package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"
	_ "go.uber.org/automaxprocs"

	"github.com/bft-labs/gelfship/internal/cliconfig"
	"github.com/bft-labs/gelfship/pkg/gelfship"
	"github.com/bft-labs/gelfship/pkg/log"
	"github.com/bft-labs/gelfship/plugins/filetail"
)

const helpDescription = `
Ship log lines to a GELF collector (Graylog and compatible) over TCP or TLS.

Lines are read from stdin, or followed from --file, batched in memory and
delivered on every flush over a fresh connection. Delivery is best effort:
a failed batch is kept and retried on the next flush.

Configuration is read from $HOME/.gelfship/config.toml, then GELFSHIP_*
environment variables, then flags.
`

var exampleUsage = strings.TrimSpace(`
  myapp 2>&1 | gelfship --host graylog.internal
  gelfship --host graylog.internal --tls --file /var/log/app.log --field env=prod
  gelfship --config ./gelfship.toml --metrics-addr :9102
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	logger := cliconfig.Logger(cfg.LogLevel)

	root := &cobra.Command{
		Use:          "gelfship",
		Short:        "Ship log lines to a GELF collector over TCP",
		Long:         strings.TrimSpace(helpDescription),
		Example:      exampleUsage,
		Version:      fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// GELFSHIP_* override the file but not explicit flags
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			logger = cliconfig.Logger(cfg.LogLevel)
			logger.Info().Interface("config", cfg).Msg("configuration")

			return run(cmd.Context(), cfg, cmd.InOrStdin(), logger)
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.gelfship/config.toml)")
	root.Flags().StringVar(&cfg.Host, "host", cfg.Host, "GELF collector host")
	root.Flags().IntVar(&cfg.Port, "port", cfg.Port, "GELF collector TCP port")

	root.Flags().BoolVar(&cfg.TLS, "tls", cfg.TLS, "use TLS")
	root.Flags().StringVar(&cfg.TLSServerName, "tls-server-name", cfg.TLSServerName, "server name to verify (defaults to host)")
	root.Flags().StringVar(&cfg.TLSCAFile, "tls-ca-file", cfg.TLSCAFile, "PEM file with trusted CA certificates")
	root.Flags().BoolVar(&cfg.TLSInsecureSkipVerify, "tls-insecure-skip-verify", cfg.TLSInsecureSkipVerify, "do not verify the server certificate")
	root.Flags().DurationVar(&cfg.DialTimeout, "dial-timeout", cfg.DialTimeout, "connection timeout (0 waits indefinitely)")

	root.Flags().IntVar(&cfg.BatchSize, "batch-size", cfg.BatchSize, "flush once this many records are buffered (0 disables)")
	root.Flags().DurationVar(&cfg.FlushInterval, "flush-interval", cfg.FlushInterval, "periodic flush interval")
	root.Flags().IntVar(&cfg.ChannelCapacity, "channel-capacity", cfg.ChannelCapacity, "event channel capacity; producers block when full")

	root.Flags().BoolVar(&cfg.NullCharacter, "null-character", cfg.NullCharacter, "terminate each message with a NUL byte")
	root.Flags().StringVar(&cfg.MinLevel, "min-level", cfg.MinLevel, "drop records less severe than this level")
	root.Flags().StringToStringVar(&cfg.AdditionalFields, "field", cfg.AdditionalFields, "additional field added to every message (key=value, repeatable)")

	root.Flags().StringVar(&cfg.File, "file", cfg.File, "follow this file instead of reading stdin")
	root.Flags().BoolVar(&cfg.FromStart, "from-start", cfg.FromStart, "with --file, ship existing content first")

	root.Flags().StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve Prometheus metrics on this address (e.g. :9102)")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "diagnostic log level (debug, info, warn, error)")

	if err := root.Execute(); err != nil {
		logger.Error().Err(err).Msg("gelfship")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg cliconfig.Config, stdin io.Reader, logger zerolog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	opts := []gelfship.Option{
		gelfship.WithLogger(log.NewZerologAdapterWithLogger(logger)),
	}
	if cfg.MetricsAddr != "" {
		opts = append(opts, gelfship.WithMetrics(nil))
	}

	var inputDone <-chan struct{}
	if cfg.File != "" {
		tail, err := filetail.New(filetail.Config{
			Path:      cfg.File,
			Level:     "info",
			FromStart: cfg.FromStart,
		})
		if err != nil {
			return err
		}
		opts = append(opts, gelfship.WithPlugin(tail))
	}

	s, err := gelfship.New(cfg.ShipperConfig(), opts...)
	if err != nil {
		return fmt.Errorf("create shipper: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	if err := s.Start(ctx); err != nil {
		return fmt.Errorf("start shipper: %w", err)
	}

	var metricsSrv *http.Server
	if cfg.MetricsAddr != "" {
		metricsSrv = serveMetrics(cfg.MetricsAddr, s.MetricsHandler(), logger)
	}

	if cfg.File == "" {
		inputDone = readLines(stdin, s, logger)
	}

	select {
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("received signal, stopping...")
	case <-inputDone:
		logger.Info().Msg("input closed, stopping...")
	}

	if metricsSrv != nil {
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		_ = metricsSrv.Shutdown(shutdownCtx)
		stop()
	}

	if err := s.Stop(); err != nil {
		return fmt.Errorf("stop shipper: %w", err)
	}
	return nil
}

// readLines enqueues every non-empty line of r. The returned channel is
// closed at EOF or when the shipper stops accepting records.
func readLines(r io.Reader, s *gelfship.Shipper, logger zerolog.Logger) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)

		reader := bufio.NewReaderSize(r, 64*1024)
		for {
			line, err := reader.ReadString('\n')
			if msg := strings.TrimRight(line, "\r\n"); msg != "" {
				if err := s.Log(gelfship.LevelInformational, msg, nil); err != nil {
					if !errors.Is(err, gelfship.ErrChannelClosed) {
						logger.Error().Err(err).Msg("enqueue failed")
					}
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					logger.Error().Err(err).Msg("read stdin")
				}
				return
			}
		}
	}()
	return done
}

func serveMetrics(addr string, handler http.Handler, logger zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Str("addr", addr).Msg("metrics server")
		}
	}()
	logger.Info().Str("addr", addr).Msg("serving metrics")
	return srv
}
