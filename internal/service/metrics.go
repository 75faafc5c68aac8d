package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	FileRejections prometheus.Counter
	OpenPages      prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "billed_gateway_requests_total",
			Help: "Requests sent to the bills API, by operation and outcome.",
		}, []string{"op", "outcome"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "billed_gateway_request_duration_seconds",
			Help:    "Latency of requests sent to the bills API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		FileRejections: f.NewCounter(prometheus.CounterOpts{
			Name: "billed_file_rejections_total",
			Help: "Justificatory files rejected for their extension.",
		}),
		OpenPages: f.NewGauge(prometheus.GaugeOpts{
			Name: "billed_open_pages",
			Help: "New bill forms currently held in memory.",
		}),
	}
}

func (m *Metrics) observe(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.requests.WithLabelValues(op, outcome).Inc()
	m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
