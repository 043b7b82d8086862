package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.SessionStarted("researcher")
	m.SessionStarted("researcher")
	m.ChoiceResolved("continue")
	m.RandomEvent()
	m.InterceptionArmed()
	m.Ended("stress")
	m.Won(2955)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.sessionsStarted.WithLabelValues("researcher")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.choicesResolved.WithLabelValues("continue")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.randomEvents))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.interceptionsArmed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.endings.WithLabelValues("stress")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.endings.WithLabelValues("victory")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.victoryScore))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.SessionStarted("developer")
		m.ChoiceResolved("stay")
		m.RandomEvent()
		m.InterceptionArmed()
		m.Ended("exhaustion")
		m.Won(100)
	})
}
