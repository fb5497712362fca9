package providers

import (
	"tatico/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TrackerStats is the narrow view of the tracker service the gauges read.
type TrackerStats interface {
	Counts() (workouts, sessions, batches int)
	StreakCount() int
	SubjectIndex() int
}

type MetricsProviderInterface interface {
	IncVerseFallbacks()
	IncValidationRejects(kind string)
	ObservePersistenceDuration(duration time.Duration)
}

type MetricsProvider struct {
	verseFallbacks      prometheus.Counter
	validationRejects   *prometheus.CounterVec
	persistenceDuration prometheus.Histogram
}

func (m *MetricsProvider) IncVerseFallbacks() {
	m.verseFallbacks.Inc()
}

func (m *MetricsProvider) IncValidationRejects(kind string) {
	m.validationRejects.WithLabelValues(kind).Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func NewMetricsProvider(conf *structures.Config, stats TrackerStats) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		verseFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tatico_verse_fallbacks_total",
			Help: "Total number of daily verse fetches served from the fallback list",
		}),

		validationRejects: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tatico_validation_rejects_total",
			Help: "Total number of rejected log submissions",
		}, []string{"kind"}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tatico_persistence_duration_seconds",
			Help:    "Duration of snapshot flushes in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "tatico_streak_days",
		Help: "Current consecutive-day usage streak",
	}, func() float64 {
		return float64(stats.StreakCount())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "tatico_subject_index",
		Help: "Current subject rotation index",
	}, func() float64 {
		return float64(stats.SubjectIndex())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "tatico_workout_logs_total",
		Help: "Number of workout logs on record",
	}, func() float64 {
		w, _, _ := stats.Counts()
		return float64(w)
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "tatico_study_sessions_total",
		Help: "Number of study sessions on record",
	}, func() float64 {
		_, s, _ := stats.Counts()
		return float64(s)
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "tatico_question_batches_total",
		Help: "Number of question batches on record",
	}, func() float64 {
		_, _, q := stats.Counts()
		return float64(q)
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncVerseFallbacks()                         {}
func (n *noopMetrics) IncValidationRejects(_ string)              {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration) {}
