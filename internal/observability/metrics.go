package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the briefing
// pipeline.
type Metrics struct {
	ReportsFetched  prometheus.Counter
	BriefingsServed *prometheus.CounterVec // labels: source={cache,llm}
	BriefingErrors  *prometheus.CounterVec // labels: stage={fetch,llm,cache}
	CacheLookups    *prometheus.CounterVec // labels: result={hit,miss}
	LLMRequests     prometheus.Counter

	FetchDuration prometheus.Histogram
	LLMDuration   prometheus.Histogram
}

// NewMetrics creates all briefing metrics and registers them with reg.
// Production wiring passes prometheus.DefaultRegisterer; tests pass a fresh
// registry so they can run in isolation.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ReportsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "avalanche_briefing",
			Name:      "reports_fetched_total",
			Help:      "Total field reports fetched from the avalanche center API.",
		}),
		BriefingsServed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "avalanche_briefing",
			Name:      "briefings_served_total",
			Help:      "Briefings served by summary source.",
		}, []string{"source"}),
		BriefingErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "avalanche_briefing",
			Name:      "briefing_errors_total",
			Help:      "Briefing failures by pipeline stage.",
		}, []string{"stage"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "avalanche_briefing",
			Name:      "summary_cache_lookups_total",
			Help:      "Summary cache lookups by result.",
		}, []string{"result"}),
		LLMRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "avalanche_briefing",
			Name:      "llm_requests_total",
			Help:      "Total chat completion requests issued.",
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "avalanche_briefing",
			Name:      "report_fetch_duration_seconds",
			Help:      "Duration of upstream field-report fetches.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		LLMDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "avalanche_briefing",
			Name:      "llm_request_duration_seconds",
			Help:      "Duration of chat completion requests.",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}

	reg.MustRegister(
		m.ReportsFetched,
		m.BriefingsServed,
		m.BriefingErrors,
		m.CacheLookups,
		m.LLMRequests,
		m.FetchDuration,
		m.LLMDuration,
	)
	return m
}
