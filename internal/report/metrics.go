package report

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bb1nfosec/bheeshma/pkg/signal"
)

// Metrics backs the `performance.track` config flag (spec.md §6) with
// in-process Prometheus counters. No HTTP listener is ever started by
// this module; callers that want these exposed stitch Registry into
// their own host process's /metrics endpoint — this module's Non-goal of
// "no outbound network traffic, telemetry, or persistence beyond the
// current process" rules out exposing one itself.
type Metrics struct {
	Registry      *prometheus.Registry
	signalsTotal  *prometheus.CounterVec
	reportsBuilt  prometheus.Counter
	installEvents prometheus.Counter
}

// NewMetrics constructs a fresh, unregistered-elsewhere metric set.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		signalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bheeshma_signals_total",
			Help: "Total signals emitted, by type.",
		}, []string{"type"}),
		reportsBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bheeshma_reports_built_total",
			Help: "Total reports generated.",
		}),
		installEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bheeshma_install_total",
			Help: "Total Install() calls.",
		}),
	}
	reg.MustRegister(m.signalsTotal, m.reportsBuilt, m.installEvents)
	return m
}

// ObserveSignals increments the per-type signal counter for every signal
// in signals. Called once per report build, not per hook invocation, to
// avoid adding counter-increment overhead to the monitored hot path.
func (m *Metrics) ObserveSignals(signals []signal.Signal) {
	if m == nil {
		return
	}
	for _, s := range signals {
		m.signalsTotal.WithLabelValues(string(s.Type())).Inc()
	}
}

// ObserveReportBuilt records one GenerateReport call.
func (m *Metrics) ObserveReportBuilt() {
	if m == nil {
		return
	}
	m.reportsBuilt.Inc()
}

// ObserveInstall records one Install call.
func (m *Metrics) ObserveInstall() {
	if m == nil {
		return
	}
	m.installEvents.Inc()
}
