package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := MustNewMetrics(prometheus.NewRegistry())

	m.Spin(SpinWon)
	m.Spin(SpinWon)
	m.Spin(SpinLimited)
	m.Outcome("100 Coins")
	m.Conflict()
	m.SessionExpired("Admin")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.spins.WithLabelValues(SpinWon)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.spins.WithLabelValues(SpinLimited)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.outcomes.WithLabelValues("100 Coins")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.conflicts))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sessionsExpired.WithLabelValues("Admin")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.Spin(SpinWon)
		m.Outcome("x")
		m.Conflict()
		m.OTPSent("register")
		m.SessionExpired("Player")
	})
}
