package routemanager

import (
	"time"

	"github.com/fasthttp/routemanager/statetree"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "routemanager"

const (
	transitionEnter = "enter"
	transitionExit  = "exit"
)

type metrics struct {
	resolutions *prometheus.CounterVec
	transitions *prometheus.CounterVec
	duration    prometheus.Histogram
}

func newMetrics(registerer prometheus.Registerer) *metrics {
	factory := promauto.With(registerer)

	return &metrics{
		resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "resolutions_total",
			Help:      "Total number of resolved locations by outcome",
		}, []string{"outcome"}),

		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "transitions_total",
			Help:      "Total number of state enters and exits",
		}, []string{"kind", "state"}),

		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "resolve_duration_seconds",
			Help:      "Location resolution duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.000001, 4, 10),
		}),
	}
}

func (mt *metrics) observeResolution(outcome statetree.Outcome, d time.Duration) {
	if mt == nil {
		return
	}

	mt.resolutions.WithLabelValues(outcome.String()).Inc()
	mt.duration.Observe(d.Seconds())
}

func (mt *metrics) observeTransition(kind string, state *statetree.State) {
	if mt == nil {
		return
	}

	mt.transitions.WithLabelValues(kind, state.ID()).Inc()
}
