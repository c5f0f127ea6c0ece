// Package metrics exposes Prometheus counters for camera input handling.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

// Results recorded for routed events.
const (
	ResultCommit   = "commit"   // update committed to the store
	ResultNoop     = "noop"     // handler returned no update
	ResultIgnored  = "ignored"  // event kind the router does not handle
	ResultRejected = "rejected" // store refused the update
)

var (
	eventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orbitcam_events_total",
			Help: "Total number of input events routed, by kind and result.",
		},
		[]string{"kind", "result"},
	)

	configReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orbitcam_config_reloads_total",
			Help: "Total number of config file reloads, by outcome.",
		},
		[]string{"outcome"},
	)

	subscribers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "orbitcam_render_subscribers",
			Help: "Number of render adapters currently attached to a camera store.",
		},
	)
)

func init() {
	prometheus.MustRegister(eventsTotal)
	prometheus.MustRegister(configReloadsTotal)
	prometheus.MustRegister(subscribers)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveEvent counts one routed event.
func ObserveEvent(kind, result string) {
	eventsTotal.WithLabelValues(kind, result).Inc()
}

// EventCount returns how many events of kind ended with result so far.
func EventCount(kind, result string) float64 {
	var m dto.Metric
	if err := eventsTotal.WithLabelValues(kind, result).Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

// ObserveConfigReload counts one config reload attempt.
func ObserveConfigReload(err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	configReloadsTotal.WithLabelValues(outcome).Inc()
}

// SubscriberAttached tracks a render adapter attaching to a store.
func SubscriberAttached() {
	subscribers.Inc()
}

// SubscriberDetached tracks a render adapter detaching from a store.
func SubscriberDetached() {
	subscribers.Dec()
}
