// Package metrics exposes prometheus counters for trail sessions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the game counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	sessionsStarted    *prometheus.CounterVec
	choicesResolved    *prometheus.CounterVec
	randomEvents       prometheus.Counter
	interceptionsArmed prometheus.Counter
	endings            *prometheus.CounterVec
	victoryScore       prometheus.Histogram
}

// New registers the game metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		sessionsStarted: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trail_sessions_started_total",
				Help: "Sessions started, partitioned by role.",
			},
			[]string{"role"},
		),
		choicesResolved: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trail_choices_resolved_total",
				Help: "Choices resolved, partitioned by outcome.",
			},
			[]string{"outcome"},
		),
		randomEvents: f.NewCounter(prometheus.CounterOpts{
			Name: "trail_random_events_total",
			Help: "Random events shown to players.",
		}),
		interceptionsArmed: f.NewCounter(prometheus.CounterOpts{
			Name: "trail_interceptions_armed_total",
			Help: "Sessions that started with the phone call armed.",
		}),
		endings: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trail_endings_total",
				Help: "Finished sessions, partitioned by ending.",
			},
			[]string{"ending"},
		),
		victoryScore: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "trail_victory_score",
			Help:    "Final score of sessions that reached the venue.",
			Buckets: prometheus.LinearBuckets(1000, 500, 10),
		}),
	}
}

func (m *Metrics) SessionStarted(role string) {
	if m == nil {
		return
	}
	m.sessionsStarted.WithLabelValues(role).Inc()
}

func (m *Metrics) ChoiceResolved(outcome string) {
	if m == nil {
		return
	}
	m.choicesResolved.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RandomEvent() {
	if m == nil {
		return
	}
	m.randomEvents.Inc()
}

func (m *Metrics) InterceptionArmed() {
	if m == nil {
		return
	}
	m.interceptionsArmed.Inc()
}

// Ended records a game over by reason.
func (m *Metrics) Ended(reason string) {
	if m == nil {
		return
	}
	m.endings.WithLabelValues(reason).Inc()
}

// Won records a victory and its score.
func (m *Metrics) Won(score int) {
	if m == nil {
		return
	}
	m.endings.WithLabelValues("victory").Inc()
	m.victoryScore.Observe(float64(score))
}
