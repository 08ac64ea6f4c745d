package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "formkit"

type metrics struct {
	submissions *prometheus.CounterVec
	pages       *prometheus.CounterVec
	deletions   prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "submissions_total",
			Help:      "Form submit attempts by result (accepted, rejected).",
		}, []string{"result"}),
		pages: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "pages_rendered_total",
			Help:      "Pages rendered by kind.",
		}, []string{"kind"}),
		deletions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "records_deleted_total",
			Help:      "Records removed from the users table.",
		}),
	}
}
