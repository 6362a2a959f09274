package server

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Makepad-fr/skycount/internal/model"
)

type metrics struct {
	signals  *prometheus.CounterVec
	counter  prometheus.Gauge
	loggedIn prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		signals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skycount_signals_total",
				Help: "Signals dispatched through the HTTP surface, by type.",
			},
			[]string{"type"},
		),
		counter: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "skycount_counter_value",
			Help: "Current value of the counter slot.",
		}),
		loggedIn: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "skycount_logged_in",
			Help: "1 when the login flag is set.",
		}),
	}
	reg.MustRegister(m.signals, m.counter, m.loggedIn)
	return m
}

// observe mirrors a state snapshot into the gauges.
func (m *metrics) observe(st model.State) {
	m.counter.Set(float64(st.Counter))
	if st.IsLogged {
		m.loggedIn.Set(1)
	} else {
		m.loggedIn.Set(0)
	}
}
