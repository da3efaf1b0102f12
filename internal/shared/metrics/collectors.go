package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "betsim"

// Resultados possíveis de uma chamada remota
const (
	OutcomeOK        = "ok"
	OutcomeRejected  = "rejected"
	OutcomeServer    = "server_error"
	OutcomeTransport = "transport_error"
)

// ClientMetrics instrumenta as chamadas do cliente HTTP por operação e resultado
type ClientMetrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

func NewClientMetrics(reg prometheus.Registerer) *ClientMetrics {
	m := &ClientMetrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Remote calls by operation and outcome.",
		}, []string{"op", "outcome"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Remote call latency by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
	}
	if reg != nil {
		reg.MustRegister(m.Requests, m.Duration)
	}
	return m
}

// Observe registra uma chamada; receptor nil não faz nada
func (m *ClientMetrics) Observe(op, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(op, outcome).Inc()
	m.Duration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// SimulatorMetrics conta apostas aceitas e rejeitadas pelo simulador
type SimulatorMetrics struct {
	BetsPlaced   *prometheus.CounterVec
	BetsRejected *prometheus.CounterVec
	UsersCreated prometheus.Counter
}

func NewSimulatorMetrics(reg prometheus.Registerer) *SimulatorMetrics {
	m := &SimulatorMetrics{
		BetsPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulator",
			Name:      "bets_placed_total",
			Help:      "Accepted bets by bet type.",
		}, []string{"bet_type"}),
		BetsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulator",
			Name:      "bets_rejected_total",
			Help:      "Rejected bets by reason.",
		}, []string{"reason"}),
		UsersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulator",
			Name:      "users_created_total",
			Help:      "Users created.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.BetsPlaced, m.BetsRejected, m.UsersCreated)
	}
	return m
}

func (m *SimulatorMetrics) Placed(betType string) {
	if m == nil {
		return
	}
	m.BetsPlaced.WithLabelValues(betType).Inc()
}

func (m *SimulatorMetrics) Rejected(reason string) {
	if m == nil {
		return
	}
	m.BetsRejected.WithLabelValues(reason).Inc()
}

func (m *SimulatorMetrics) UserCreated() {
	if m == nil {
		return
	}
	m.UsersCreated.Inc()
}
