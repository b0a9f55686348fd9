// Package telemetry exposes the RFP controller counters as prometheus
// metrics on a private registry. A nil *Metrics is valid and records nothing.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "rfp"

// Metrics holds the counters of one run.
type Metrics struct {
	registry *prometheus.Registry

	PredictedEvents *prometheus.CounterVec
	RouteUpdates    *prometheus.CounterVec
	LinkChanges     *prometheus.CounterVec
	Flushes         prometheus.Counter
	FlushedUpdates  prometheus.Counter
	DaemonErrors    *prometheus.CounterVec
}

// New creates the counters and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		PredictedEvents: newCounterVec("predicted_events_total",
			"Predicted failures by outcome (scheduled, skipped).", "outcome"),
		RouteUpdates: newCounterVec("route_updates_total",
			"Route updates handed to the batcher by disposition (applied, deferred).", "disposition"),
		LinkChanges: newCounterVec("link_changes_total",
			"Observed physical link changes by outcome.", "outcome"),
		Flushes: newCounter("bfu_flushes_total",
			"Number of BFU periods ended with a flush."),
		FlushedUpdates: newCounter("bfu_flushed_updates_total",
			"Route updates applied by BFU flushes."),
		DaemonErrors: newCounterVec("daemon_errors_total",
			"Routing daemon calls that failed, by operation.", "op"),
	}
	m.registry.MustRegister(m.PredictedEvents, m.RouteUpdates, m.LinkChanges,
		m.Flushes, m.FlushedUpdates, m.DaemonErrors)
	return m
}

func newCounterVec(name, help, label string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		[]string{label},
	)
}

func newCounter(name, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	})
}

// Registry returns the registry holding the counters.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// PredictedEvent counts a predicted failure with the given outcome.
func (m *Metrics) PredictedEvent(outcome string) {
	if m == nil {
		return
	}
	m.PredictedEvents.WithLabelValues(outcome).Inc()
}

// RouteUpdate counts a route update with the given disposition.
func (m *Metrics) RouteUpdate(disposition string) {
	if m == nil {
		return
	}
	m.RouteUpdates.WithLabelValues(disposition).Inc()
}

// LinkChange counts an observed link change with the given outcome.
func (m *Metrics) LinkChange(outcome string) {
	if m == nil {
		return
	}
	m.LinkChanges.WithLabelValues(outcome).Inc()
}

// Flush counts the end of a BFU period that applied n updates.
func (m *Metrics) Flush(n int) {
	if m == nil {
		return
	}
	m.Flushes.Inc()
	m.FlushedUpdates.Add(float64(n))
}

// DaemonError counts a failed routing daemon call.
func (m *Metrics) DaemonError(op string) {
	if m == nil {
		return
	}
	m.DaemonErrors.WithLabelValues(op).Inc()
}

// WriteFile writes the counters in the text exposition format to path.
func (m *Metrics) WriteFile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
