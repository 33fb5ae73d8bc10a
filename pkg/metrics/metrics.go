// Package metrics provides Prometheus metrics for the Ascent career-core service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace string
	subsystem string
	registry  prometheus.Registerer

	// Game metrics
	sessionsStarted  *prometheus.CounterVec
	patternsChecked  prometheus.Counter
	patternMatches   *prometheus.CounterVec
	sessionsFinished *prometheus.CounterVec
	activeSessions   prometheus.Gauge

	// Synergy analysis metrics
	analysesSubmitted  prometheus.Counter
	analysesCompleted  prometheus.Counter
	analysesDuplicate  prometheus.Counter
	analysisErrors     prometheus.Counter
	adviceErrors       prometheus.Counter
	resumeExtractions  prometheus.Counter

	// Pipeline health
	queueSize   prometheus.Gauge
	workerCount prometheus.Gauge

	// Hall of fame / archive
	famePlayers   prometheus.Gauge
	archiveWrites prometheus.Counter
	archiveErrors prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager on a custom registry, so the default Go collectors
// stay out of the scrape.
var (
	globalManager  *Manager                                      //nolint:gochecknoglobals // singleton metrics manager
	customRegistry = prometheus.NewRegistry()                    //nolint:gochecknoglobals // singleton registry
)

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with configuration options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "ascent",
		subsystem: "core",
		registry:  prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initCollectors()
	return m
}

func (m *Manager) initCollectors() {
	factory := promauto.With(m.registry)

	m.sessionsStarted = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_started_total",
		Help:      "Game sessions started, by mode.",
	}, []string{"mode"})

	m.patternsChecked = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "patterns_checked_total",
		Help:      "Pattern attempts submitted.",
	})

	m.patternMatches = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pattern_matches_total",
		Help:      "Correct pattern matches, by mode.",
	}, []string{"mode"})

	m.sessionsFinished = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_finished_total",
		Help:      "Game sessions that exhausted their pattern batch, by mode.",
	}, []string{"mode"})

	m.activeSessions = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "active_sessions",
		Help:      "Game sessions currently held in memory.",
	})

	m.analysesSubmitted = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analyses_submitted_total",
		Help:      "Synergy analyses accepted for async processing.",
	})

	m.analysesCompleted = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analyses_completed_total",
		Help:      "Synergy analyses completed by workers.",
	})

	m.analysesDuplicate = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analyses_duplicate_total",
		Help:      "Analysis submissions rejected as duplicates.",
	})

	m.analysisErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analysis_errors_total",
		Help:      "Synergy analyses that failed in the worker.",
	})

	m.adviceErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "advice_errors_total",
		Help:      "Advice generation failures (analysis still served).",
	})

	m.resumeExtractions = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "resume_extractions_total",
		Help:      "Resume documents run through text extraction.",
	})

	m.queueSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analysis_queue_size",
		Help:      "Jobs currently queued for the analysis workers.",
	})

	m.workerCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Analysis workers running.",
	})

	m.famePlayers = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "hall_of_fame_players",
		Help:      "Players tracked across all hall-of-fame modes.",
	})

	m.archiveWrites = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "archive_writes_total",
		Help:      "Finished sessions persisted to the archive.",
	})

	m.archiveErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "archive_errors_total",
		Help:      "Archive writes that failed.",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests, by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request duration in milliseconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint", "method", "status"})
}

// Package-level helpers operating on the global manager.

func RecordSessionStarted(mode string)  { globalManager.sessionsStarted.WithLabelValues(mode).Inc() }
func RecordPatternChecked()             { globalManager.patternsChecked.Inc() }
func RecordPatternMatch(mode string)    { globalManager.patternMatches.WithLabelValues(mode).Inc() }
func RecordSessionFinished(mode string) { globalManager.sessionsFinished.WithLabelValues(mode).Inc() }
func UpdateActiveSessions(n int)        { globalManager.activeSessions.Set(float64(n)) }

func RecordAnalysisSubmitted() { globalManager.analysesSubmitted.Inc() }
func RecordAnalysisCompleted() { globalManager.analysesCompleted.Inc() }
func RecordAnalysisDuplicate() { globalManager.analysesDuplicate.Inc() }
func RecordAnalysisError()     { globalManager.analysisErrors.Inc() }
func RecordAdviceError()       { globalManager.adviceErrors.Inc() }
func RecordResumeExtraction()  { globalManager.resumeExtractions.Inc() }

func UpdateQueueSize(n int)   { globalManager.queueSize.Set(float64(n)) }
func UpdateWorkerCount(n int) { globalManager.workerCount.Set(float64(n)) }

func UpdateFamePlayers(n int) { globalManager.famePlayers.Set(float64(n)) }
func RecordArchiveWrite()     { globalManager.archiveWrites.Inc() }
func RecordArchiveError()     { globalManager.archiveErrors.Inc() }

func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
}

// GetRegistry exposes the custom registry for the /healthz scrape handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
