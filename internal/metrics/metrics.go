package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "vault"

// Результаты спина для метки result
const (
	SpinWon        = "won"
	SpinEmpty      = "empty"
	SpinLimited    = "limit_reached"
	SpinContention = "contention"
	SpinFailed     = "error"
)

// Metrics - счетчики приложения. Методы безопасны для nil, поэтому в тестах метрики можно не создавать
type Metrics struct {
	spins           *prometheus.CounterVec
	outcomes        *prometheus.CounterVec
	conflicts       prometheus.Counter
	otpSent         *prometheus.CounterVec
	sessionsExpired *prometheus.CounterVec
}

// MustNewMetrics регистрирует коллекторы в reg и паникует при повторной регистрации
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		spins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "wheel",
				Name:      "spins_total",
				Help:      "Spin attempts by result.",
			},
			[]string{"result"},
		),
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "wheel",
				Name:      "outcomes_total",
				Help:      "Outcomes drawn by the wheel.",
			},
			[]string{"label"},
		),
		conflicts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "wheel",
				Name:      "persistence_conflicts_total",
				Help:      "Conditional spin updates lost to a concurrent writer.",
			},
		),
		otpSent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "auth",
				Name:      "otp_sent_total",
				Help:      "Verification codes issued by purpose.",
			},
			[]string{"purpose"},
		),
		sessionsExpired: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "auth",
				Name:      "sessions_expired_total",
				Help:      "Sessions terminated by the expiry window.",
			},
			[]string{"kind"},
		),
	}

	reg.MustRegister(m.spins, m.outcomes, m.conflicts, m.otpSent, m.sessionsExpired)
	return m
}

func (m *Metrics) Spin(result string) {
	if m == nil {
		return
	}
	m.spins.WithLabelValues(result).Inc()
}

func (m *Metrics) Outcome(label string) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(label).Inc()
}

func (m *Metrics) Conflict() {
	if m == nil {
		return
	}
	m.conflicts.Inc()
}

func (m *Metrics) OTPSent(purpose string) {
	if m == nil {
		return
	}
	m.otpSent.WithLabelValues(purpose).Inc()
}

func (m *Metrics) SessionExpired(kind string) {
	if m == nil {
		return
	}
	m.sessionsExpired.WithLabelValues(kind).Inc()
}
