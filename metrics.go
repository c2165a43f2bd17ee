package rangetree

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus collectors a tree updates as it is mutated.
// Queries never touch them.
type Metrics struct {
	Inserts   prometheus.Counter
	Deletes   prometheus.Counter
	Rotations *prometheus.CounterVec
	Nodes     prometheus.Gauge
	Height    prometheus.Gauge

	rotateLeft  prometheus.Counter
	rotateRight prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg. A nil reg leaves
// them unregistered. Several trees may share one Metrics.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{
		Inserts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inserts_total",
			Help:      "Keys inserted into the tree.",
		}),
		Deletes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deletes_total",
			Help:      "Keys deleted from the tree.",
		}),
		Rotations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rotations_total",
			Help:      "Single rotations performed while rebalancing.",
		}, []string{"direction"}),
		Nodes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "nodes",
			Help:      "Number of keys in the tree after the last mutation.",
		}),
		Height: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "height",
			Help:      "Height of the tree after the last mutation.",
		}),
	}
	m.rotateLeft = m.Rotations.WithLabelValues("left")
	m.rotateRight = m.Rotations.WithLabelValues("right")
	return m
}
