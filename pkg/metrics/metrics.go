package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RendersAccepted = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "paperpress", Name: "renders_accepted_total", Help: "Number of accepted render jobs."},
	)
	RendersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "paperpress", Name: "renders_total", Help: "Number of settled render jobs by outcome."},
		[]string{"outcome"},
	)
	PreviewsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "paperpress", Name: "previews_total", Help: "Number of preview requests by outcome."},
		[]string{"outcome"},
	)
	CallbackFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "paperpress", Name: "callback_failures_total", Help: "Number of callback POSTs that could not be delivered."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RendersAccepted)
	reg.MustRegister(RendersTotal)
	reg.MustRegister(PreviewsTotal)
	reg.MustRegister(CallbackFailures)
}
