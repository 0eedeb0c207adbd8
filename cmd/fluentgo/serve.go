package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/fluentgo/fluentgo/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve <scenario>",
	Short: "Run a scenario on a loop, exposing its live statistics as Prometheus metrics",
	Long: `Runs one of the bundled scenarios repeatedly, mirroring each iteration's
FluentStatistics (event tallies, target means) as Prometheus gauges/counters
on /metrics. This only mirrors in-memory counters for the process's
lifetime; nothing is persisted across runs.`,
	Args: cobra.ExactArgs(1),
	RunE: serveScenario,
}

func init() {
	serveCmd.Flags().String("metrics-addr", ":9090", "listen address for the /metrics endpoint")
	serveCmd.Flags().Duration("interval", 2*time.Second, "delay between scenario iterations")
}

var (
	testsRunGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "fluentgo", Name: "tests_run", Help: "Tests run in the most recent scenario iteration.",
	})
	satisfiableGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "fluentgo", Name: "satisfiable", Help: "1 if the most recent scenario iteration was satisfiable, else 0.",
	})
	iterationCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fluentgo", Name: "iterations_total", Help: "Scenario iterations completed since this process started.",
	})
	eventCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fluentgo", Name: "events_total", Help: "Named event occurrences recorded via check.Event, cumulative across iterations.",
	}, []string{"event"})
	targetGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "fluentgo", Name: "target_mean", Help: "Running mean of a named target observed via check.Target in the most recent iteration.",
	}, []string{"target"})
)

func serveScenario(cmd *cobra.Command, args []string) error {
	name := args[0]
	sc, ok := scenarios[name]
	if !ok {
		return fmt.Errorf("unknown scenario %q; available: %s", name, strings.Join(scenarioNames(), ", "))
	}

	addr, _ := cmd.Flags().GetString("metrics-addr")
	interval, _ := cmd.Flags().GetDuration("interval")

	strategy, _, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("fluentgo: loading config: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("addr", addr).Msg("serving /metrics")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("metrics server stopped")
		}
	}()

	seed := time.Now().UnixNano()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		result := sc(seed, strategy)
		recordMetrics(result)
		logger.Info().Str("scenario", name).Bool("satisfiable", result.Satisfiable).Int64("seed", seed).Msg("scenario iteration complete")
		seed++

		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
		}
	}
}

func recordMetrics(result outcome) {
	testsRunGauge.Set(float64(result.TestsRun))
	iterationCounter.Inc()
	if result.Satisfiable {
		satisfiableGauge.Set(1)
	} else {
		satisfiableGauge.Set(0)
	}
	if result.Statistics == nil {
		return
	}
	for _, e := range result.Statistics.Events() {
		eventCounter.WithLabelValues(e.Name).Add(float64(e.Count))
	}
	for _, t := range result.Statistics.Targets() {
		targetGauge.WithLabelValues(t.Name).Set(t.Mean)
	}
}
