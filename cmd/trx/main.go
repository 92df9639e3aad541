// Command trx replays a CSV stream of client events through the dispute
// lifecycle state machine (spec.md) and prints one final balance snapshot
// per client as CSV.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/trxledger/internal/dispatch"
	"github.com/iho/trxledger/internal/domain"
	"github.com/iho/trxledger/internal/infrastructure/config"
	"github.com/iho/trxledger/internal/infrastructure/logger"
	"github.com/iho/trxledger/internal/infrastructure/metrics"
	"github.com/iho/trxledger/internal/infrastructure/retry"
	"github.com/iho/trxledger/internal/infrastructure/runid"
	"github.com/iho/trxledger/internal/ioadapter"
)

// Exit codes per spec.md §7.
const (
	exitOK             = 0
	exitUsage          = 1
	exitIOFailure      = 2
	exitInvariantFatal = 3
)

var (
	flagTopology    string
	flagWorkers     int
	flagLogLevel    string
	flagLogFormat   string
	flagMetricsAddr string
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "trx: loading config: %v\n", err)
		return exitUsage
	}

	rootCmd := &cobra.Command{
		Use:   "trx <input.csv>",
		Short: "Replay a client event stream through the ledger engine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			effective := &config.Config{
				Topology:    flagTopology,
				Workers:     flagWorkers,
				LogLevel:    flagLogLevel,
				LogFormat:   flagLogFormat,
				MetricsAddr: flagMetricsAddr,
			}
			return process(effective, args[0], os.Stdout)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&flagTopology, "topology", cfg.Topology, "dispatch topology: serial, sharded, actor")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", cfg.Workers, "worker count for the sharded topology (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", cfg.LogFormat, "log format: json, console")
	rootCmd.PersistentFlags().StringVar(&flagMetricsAddr, "metrics-addr", cfg.MetricsAddr, "address to serve Prometheus metrics on (empty disables)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "topologies",
		Short: "List the supported dispatch topologies",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range dispatch.Topologies {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	})

	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitError
		if asExitError(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "trx:", exitErr.err)
			return exitErr.code
		}
		fmt.Fprintln(os.Stderr, "trx:", err)
		return exitUsage
	}
	return exitOK
}

// exitError carries a specific process exit code through cobra's RunE,
// which only ever sees a plain error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func asExitError(err error, target **exitError) bool {
	ee, ok := err.(*exitError)
	if !ok {
		return false
	}
	*target = ee
	return true
}

func process(cfg *config.Config, inputPath string, out io.Writer) error {
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	run := runid.New()
	log = log.With().Str("run_id", run).Logger()

	m := metrics.New()
	if cfg.MetricsAddr != "" {
		srv := startMetricsServer(cfg.MetricsAddr, m, log)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return &exitError{code: exitIOFailure, err: fmt.Errorf("opening input: %w", err)}
	}
	defer in.Close()

	dec, err := ioadapter.NewDecoder(in, metrics.NewRowTelemetry(m, log))
	if err != nil {
		return &exitError{code: exitIOFailure, err: err}
	}

	disp, err := dispatch.New(dispatch.Topology(cfg.Topology), cfg.Workers, metrics.NewEngineTelemetry(m, log))
	if err != nil {
		return &exitError{code: exitUsage, err: err}
	}

	for {
		ev, ok, err := dec.Next()
		if err != nil {
			return &exitError{code: exitIOFailure, err: err}
		}
		if !ok {
			break
		}
		if err := disp.Ingest(ev); err != nil {
			var inv *domain.InvariantViolation
			if isInvariantViolation(err, &inv) {
				return abortOnInvariantViolation(log, m, err)
			}
			return &exitError{code: exitIOFailure, err: err}
		}
	}

	snaps, err := disp.Finalize()
	if err != nil {
		var inv *domain.InvariantViolation
		if isInvariantViolation(err, &inv) {
			return abortOnInvariantViolation(log, m, err)
		}
		return &exitError{code: exitIOFailure, err: err}
	}
	m.ClientsFinalized.Set(float64(len(snaps)))

	writer := retry.NewWriter()
	ctx := context.Background()
	if err := writer.Write(ctx, func() error {
		return ioadapter.EncodeSnapshots(out, snaps)
	}); err != nil {
		return &exitError{code: exitIOFailure, err: fmt.Errorf("writing output: %w", err)}
	}

	return nil
}

func isInvariantViolation(err error, target **domain.InvariantViolation) bool {
	return errors.As(err, target)
}

// abortOnInvariantViolation records and logs a fatal, engine-internal
// invariant violation before the caller aborts the run (spec.md §7).
// WithLevel(zerolog.FatalLevel), not Fatal(), since zerolog's Fatal
// convenience method calls os.Exit(1) directly — this path must return
// exitInvariantFatal through the normal exitError flow instead.
func abortOnInvariantViolation(log zerolog.Logger, m *metrics.Metrics, err error) error {
	m.InvariantViolations.Inc()
	log.WithLevel(zerolog.FatalLevel).Err(err).Msg("invariant violation, aborting")
	return &exitError{code: exitInvariantFatal, err: err}
}

func startMetricsServer(addr string, m *metrics.Metrics, log zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn().Err(err).Msg("metrics server stopped")
		}
	}()
	return srv
}
