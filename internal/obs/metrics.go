// Package obs — metrics.go
//
// Prometheus metrics for the axlab runner and model-search engines.
//
// Endpoint: GET /metrics, served on the address passed to Serve (the
// CLI defaults to 127.0.0.1:9091; the address is used as given).
//
// Metric naming convention: axlab_<subsystem>_<name>_<unit>
//
// All metrics are registered on a dedicated prometheus.Registry rather
// than the default global registry, so embedding axlab in another
// process never collides with its metrics.
package obs

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every Prometheus metric descriptor axlab reports.
type Metrics struct {
	registry *prometheus.Registry

	// ─── Runner ───────────────────────────────────────────────────────

	// AxiomsAnalyzedTotal counts axioms that have completed the battery.
	AxiomsAnalyzedTotal prometheus.Counter

	// AxiomAnalysisDuration records wall-clock seconds spent per axiom.
	AxiomAnalysisDuration prometheus.Histogram

	// RunsCompletedTotal counts finished RunBatteryAndPersist calls.
	// Labels: status (ok, error)
	RunsCompletedTotal *prometheus.CounterVec

	// ─── Model search ─────────────────────────────────────────────────

	// ModelSearchOutcomesTotal counts model.Engine FindModel outcomes.
	// Labels: engine (naive, prunable), status (found, not_found, timeout, cutoff)
	ModelSearchOutcomesTotal *prometheus.CounterVec

	// ModelSearchCandidatesHistogram records candidates explored per search.
	ModelSearchCandidatesHistogram *prometheus.HistogramVec

	// ─── Implication probes ───────────────────────────────────────────

	// ImplicationChecksTotal is registered for implication probe runs.
	// Labels: theory, status (confirmed, counterexample, inconclusive)
	// No axlab package increments it, so it stays at zero.
	ImplicationChecksTotal *prometheus.CounterVec

	// ProofAttemptsTotal is registered for rewriting prover invocations.
	// Labels: status (proved, timeout, cutoff, unknown)
	// No axlab package increments it, so it stays at zero.
	ProofAttemptsTotal *prometheus.CounterVec

	// ─── Store ─────────────────────────────────────────────────────────

	// StoreWriteLatency records ArtifactStore write latency in seconds.
	// Labels: op (write_bytes; WriteJSON goes through WriteBytes, and
	// the record_* writes are not timed)
	StoreWriteLatency *prometheus.HistogramVec

	// ArtifactsWrittenTotal counts content-addressed blobs written.
	// Labels: kind
	ArtifactsWrittenTotal *prometheus.CounterVec

	// startTime records process start, for uptime.
	startTime time.Time

	// Uptime is the number of seconds since the registry was created.
	Uptime prometheus.Gauge
}

// NewMetrics creates and registers every axlab Prometheus metric on a
// dedicated registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		AxiomsAnalyzedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "axlab",
			Subsystem: "runner",
			Name:      "axioms_analyzed_total",
			Help:      "Total axioms that have completed the analysis battery.",
		}),

		AxiomAnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "axlab",
			Subsystem: "runner",
			Name:      "axiom_analysis_duration_seconds",
			Help:      "Wall-clock time spent analyzing a single axiom.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		}),

		RunsCompletedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "axlab",
			Subsystem: "runner",
			Name:      "runs_completed_total",
			Help:      "Total RunBatteryAndPersist calls, by outcome.",
		}, []string{"status"}),

		ModelSearchOutcomesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "axlab",
			Subsystem: "model_search",
			Name:      "outcomes_total",
			Help:      "Total model search outcomes, by engine and status.",
		}, []string{"engine", "status"}),

		ModelSearchCandidatesHistogram: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "axlab",
			Subsystem: "model_search",
			Name:      "candidates_explored",
			Help:      "Candidate assignments explored per model search call.",
			Buckets:   []float64{1, 10, 100, 1000, 10000, 100000},
		}, []string{"engine"}),

		ImplicationChecksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "axlab",
			Subsystem: "implication",
			Name:      "checks_total",
			Help:      "Total implication probes, by theory and status.",
		}, []string{"theory", "status"}),

		ProofAttemptsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "axlab",
			Subsystem: "implication",
			Name:      "proof_attempts_total",
			Help:      "Total rewriting proof attempts, by outcome.",
		}, []string{"status"}),

		StoreWriteLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "axlab",
			Subsystem: "store",
			Name:      "write_latency_seconds",
			Help:      "ArtifactStore write latency in seconds, by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),

		ArtifactsWrittenTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "axlab",
			Subsystem: "store",
			Name:      "artifacts_written_total",
			Help:      "Total content-addressed artifacts written, by kind.",
		}, []string{"kind"}),

		Uptime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "axlab",
			Subsystem: "process",
			Name:      "uptime_seconds",
			Help:      "Seconds since this metrics registry was created.",
		}),
	}

	reg.MustRegister(
		m.AxiomsAnalyzedTotal,
		m.AxiomAnalysisDuration,
		m.RunsCompletedTotal,
		m.ModelSearchOutcomesTotal,
		m.ModelSearchCandidatesHistogram,
		m.ImplicationChecksTotal,
		m.ProofAttemptsTotal,
		m.StoreWriteLatency,
		m.ArtifactsWrittenTotal,
		m.Uptime,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return m
}

// Serve starts the Prometheus HTTP metrics server on addr, blocking
// until ctx is cancelled or the server fails.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go m.updateUptime(ctx)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("metrics server on %s: %w", addr, err)
	}
	return nil
}

func (m *Metrics) updateUptime(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.Uptime.Set(time.Since(m.startTime).Seconds())
		case <-ctx.Done():
			return
		}
	}
}
