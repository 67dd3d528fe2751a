package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "urbanshade"

// Metrics holds the Prometheus counters, histograms, and gauges for the service.
type Metrics struct {
	// Heat engine metrics.
	HeatmapsGenerated    *prometheus.CounterVec // labels: profile
	GenerationDuration   prometheus.Histogram
	SimulationsRun       prometheus.Counter
	SimulationDuration   prometheus.Histogram
	InterventionsApplied *prometheus.CounterVec // labels: type
	InterventionsSkipped prometheus.Counter
	GridCache            *prometheus.CounterVec // labels: result={hit,miss}
	PlannerReady         prometheus.Gauge

	// Publication metrics.
	RecordsPublished prometheus.Counter
	PublishErrors    prometheus.Counter

	// Assistant metrics.
	AssistantAnswers *prometheus.CounterVec // labels: kind={voice,query}, source={canned,llm,simulated}

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeAPIDuration prometheus.Histogram
	GeocodeEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics that are not registered anywhere, so
// tests can build as many as they need without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		HeatmapsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "heatmaps_generated_total",
			Help:      "Heat maps generated, by hotspot profile.",
		}, []string{"profile"}),
		GenerationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "heatmap_generation_duration_seconds",
			Help:      "Time spent generating a heat map.",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
		SimulationsRun: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulations_total",
			Help:      "Intervention simulations completed.",
		}),
		SimulationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "simulation_duration_seconds",
			Help:      "Time spent applying an intervention plan.",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5},
		}),
		InterventionsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interventions_applied_total",
			Help:      "Interventions applied to a heat map, by type.",
		}, []string{"type"}),
		InterventionsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interventions_skipped_total",
			Help:      "Interventions ignored for an unknown type or malformed coordinates.",
		}),
		GridCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "grid_cache_total",
			Help:      "Base grid cache lookups by result.",
		}, []string{"result"}),
		PlannerReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "planner_ready",
			Help:      "1 once base grids are warmed, 0 otherwise.",
		}),
		RecordsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_published_total",
			Help:      "Simulation records written to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Simulation records that failed to publish.",
		}),
		AssistantAnswers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assistant_answers_total",
			Help:      "Assistant answers by request kind and answer source.",
		}, []string{"kind", "source"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "geocode_api_duration_seconds",
			Help:      "Mapbox API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "geocode_enabled",
			Help:      "1 when geocoding enrichment is enabled, 0 otherwise.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.HeatmapsGenerated,
		m.GenerationDuration,
		m.SimulationsRun,
		m.SimulationDuration,
		m.InterventionsApplied,
		m.InterventionsSkipped,
		m.GridCache,
		m.PlannerReady,
		m.RecordsPublished,
		m.PublishErrors,
		m.AssistantAnswers,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.GeocodeEnabled,
	}
}
