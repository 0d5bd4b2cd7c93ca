// Package metrics exposes Prometheus counters for webhook ingestion and delivery.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "crm"

// Metrics owns a private registry so tests can create independent instances.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	webhookRequests *prometheus.CounterVec
	ingested        *prometheus.CounterVec
	relayForwards   *prometheus.CounterVec
	graphSends      *prometheus.CounterVec
	liveSessions    prometheus.Gauge
	liveDropped     prometheus.Counter
}

// New creates the collectors and registers them with Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		webhookRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_requests_total",
			Help:      "Webhook deliveries by verification result.",
		}, []string{"result"}),
		ingested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_ingested_total",
			Help:      "Normalized messages by platform and outcome.",
		}, []string{"platform", "outcome"}),
		relayForwards: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relay_forwards_total",
			Help:      "Forwarding attempts by result.",
		}, []string{"result"}),
		graphSends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "graph_sends_total",
			Help:      "Outbound Graph API sends by result.",
		}, []string{"result"}),
		liveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_sessions",
			Help:      "Connected live viewers.",
		}),
		liveDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "live_dropped_total",
			Help:      "Live events dropped for slow viewers.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.webhookRequests,
		m.ingested,
		m.relayForwards,
		m.graphSends,
		m.liveSessions,
		m.liveDropped,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) WebhookRequest(result string) {
	if m != nil {
		m.webhookRequests.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) MessageIngested(platform, outcome string) {
	if m != nil {
		m.ingested.WithLabelValues(platform, outcome).Inc()
	}
}

func (m *Metrics) RelayForward(result string) {
	if m != nil {
		m.relayForwards.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) GraphSend(result string) {
	if m != nil {
		m.graphSends.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) LiveSessionOpened() {
	if m != nil {
		m.liveSessions.Inc()
	}
}

func (m *Metrics) LiveSessionClosed() {
	if m != nil {
		m.liveSessions.Dec()
	}
}

func (m *Metrics) LiveDropped() {
	if m != nil {
		m.liveDropped.Inc()
	}
}
