package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/spawnpool/internal/simulation"
	"github.com/ajitpratap0/spawnpool/pkg/config"
	"github.com/ajitpratap0/spawnpool/pkg/logger"
	"github.com/ajitpratap0/spawnpool/pkg/metrics"
	"github.com/ajitpratap0/spawnpool/pkg/observability"
	"github.com/ajitpratap0/spawnpool/pkg/pool"
	"github.com/ajitpratap0/spawnpool/pkg/report"
)

type simulateFlags struct {
	configFile  string
	rounds      int
	reportFile  string
	metricsAddr string
	trace       bool
	logLevel    string
}

func newSimulateCmd() *cobra.Command {
	f := &simulateFlags{}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run spawn waves against a pool and report how it was used",
		Long: `Run spawn waves against a pool filled from the configuration. Every round
draws a random enemy, a strong enemy, a warrior and a batch of melee enemies,
then releases them all.

Example:
  spawnpool simulate --config spawnpool.yaml --rounds 500 --report run.json.zst`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(f.configFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("rounds") {
				cfg.Simulation.Rounds = f.rounds
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Logging.Level = f.logLevel
			}
			if cmd.Flags().Changed("metrics-addr") {
				cfg.Metrics.Enabled = f.metricsAddr != ""
				cfg.Metrics.Listen = f.metricsAddr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runSimulation(ctx, cmd.OutOrStdout(), cfg, f)
		},
	}

	cmd.Flags().StringVarP(&f.configFile, "config", "c", "", "Path to configuration YAML file (default: built-in sample)")
	cmd.Flags().IntVar(&f.rounds, "rounds", 0, "Number of spawn waves (overrides simulation.rounds)")
	cmd.Flags().StringVar(&f.reportFile, "report", "", "Write a JSON report to this path; a .zst suffix compresses it")
	cmd.Flags().StringVar(&f.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (overrides metrics.listen)")
	cmd.Flags().BoolVar(&f.trace, "trace", false, "Export OpenTelemetry spans to stderr")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	return cmd
}

func runSimulation(ctx context.Context, out io.Writer, cfg *config.Config, f *simulateFlags) error {
	if err := logger.Init(cfg.Logging.LoggerConfig()); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	log := logger.With(zap.String("component", "spawnpool-cli"), zap.String("pool", cfg.Name))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector, err := metrics.NewCollector(cfg.Name, reg)
	if err != nil {
		return err
	}

	if cfg.Metrics.Enabled {
		srv := serveMetrics(cfg.Metrics.Listen, reg, log)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Warn("Metrics server shutdown failed", zap.Error(err))
			}
		}()
	}

	if f.trace {
		tp, err := observability.InitTracing(ctx, observability.DefaultTracingConfig(version))
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				log.Warn("Tracer shutdown failed", zap.Error(err))
			}
		}()
	}

	p, factory, err := buildPool(cfg, pool.WithObserver(collector))
	if err != nil {
		return err
	}

	timer := metrics.NewTimer("simulation")
	log.Info("Starting simulation",
		zap.Int("rounds", cfg.Simulation.Rounds),
		zap.Int("batch_size", cfg.Simulation.BatchSize),
		zap.Bool("randomize", cfg.Simulation.Randomize))

	res, runErr := simulation.New(p, cfg.Simulation).Run(ctx)
	elapsed := timer.Stop()

	r := report.Build(p, res.Summary())
	if f.reportFile != "" {
		if err := report.WriteFile(f.reportFile, r); err != nil {
			return err
		}
		log.Info("Report written", zap.String("path", f.reportFile))
	}

	stats := p.Stats()
	fmt.Fprintf(out, "Pool %q: %d rounds in %s\n", p.Name(), len(res.Rounds), elapsed)
	fmt.Fprintf(out, "  acquired:    %d (recycled %d, constructed %d)\n",
		stats.Acquisitions(), stats.Recycled, stats.Constructed)
	fmt.Fprintf(out, "  released:    %d\n", stats.Released)
	fmt.Fprintf(out, "  built total: %d\n", factory.Built())
	for _, typ := range slices.Sorted(maps.Keys(res.Failures)) {
		fmt.Fprintf(out, "  failed %-24s %d\n", typ+":", res.Failures[typ])
	}
	return runErr
}

func serveMetrics(addr string, reg *prometheus.Registry, log *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			log.Error("Metrics server failed", zap.Error(err))
		}
	}()
	log.Info("Serving metrics", zap.String("addr", addr))
	return srv
}
