package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/yourusername/ripple/pkg/ripple"
)

const metricsNamespace = "ripple"

// metrics holds the server's prometheus collectors.
type metrics struct {
	connections       prometheus.Counter
	activeConnections prometheus.Gauge
	requests          *prometheus.CounterVec
	parseErrors       *prometheus.CounterVec
	incompleteReads   prometheus.Counter
}

func newMetrics(reg prometheus.Registerer, pool *ripple.BufferPool) *metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)

	m := &metrics{
		connections: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "server",
			Name:      "connections_total",
			Help:      "Total number of accepted connections",
		}),
		activeConnections: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "server",
			Name:      "active_connections",
			Help:      "Connections currently being served",
		}),
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "server",
			Name:      "requests_total",
			Help:      "Responses written, by route and status code",
		}, []string{"route", "code"}),
		parseErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http11",
			Name:      "parse_errors_total",
			Help:      "Requests rejected by the decoder, by error kind",
		}, []string{"kind"}),
		incompleteReads: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http11",
			Name:      "incomplete_reads_total",
			Help:      "Parse attempts that needed more bytes",
		}),
	}

	f.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: "buffer_pool",
		Name:      "hit_rate",
		Help:      "Read buffer pool hit rate (0-1)",
	}, func() float64 {
		return pool.Stats().HitRate
	})

	return m
}
