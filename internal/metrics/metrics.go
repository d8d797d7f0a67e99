package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Drop reasons recorded on track_messages_dropped_total.
const (
	ReasonMalformed    = "malformed"
	ReasonUnknownType  = "unknown_type"
	ReasonStoreError   = "store_error"
	ReasonSlowConsumer = "slow_consumer"
)

// Metrics holds the realtime-path instruments. Dropped events are counted
// rather than silently discarded so the drop rate stays observable.
type Metrics struct {
	registry *prometheus.Registry

	ConnectedSessions prometheus.Gauge
	Broadcasts        prometheus.Counter
	DroppedMessages   *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		ConnectedSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "track_connected_sessions",
			Help: "Currently open realtime sessions.",
		}),
		Broadcasts: factory.NewCounter(prometheus.CounterOpts{
			Name: "track_broadcasts_total",
			Help: "Location events handed to the broadcast router.",
		}),
		DroppedMessages: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "track_messages_dropped_total",
			Help: "Realtime messages dropped, by reason.",
		}, []string{"reason"}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
