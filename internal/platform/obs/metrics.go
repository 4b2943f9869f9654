package obs

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	Requests          *prometheus.CounterVec
	SkippedLines      *prometheus.CounterVec
	OptimizerDuration *prometheus.HistogramVec
	ReconstructionGap prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),

		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dfcoptim",
				Name:      "requests_total",
				Help:      "Total number of transformation requests by route and outcome",
			},
			[]string{"route", "status"},
		),

		SkippedLines: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dfcoptim",
				Name:      "skipped_lines_total",
				Help:      "Order lines left out of the optimizer request",
			},
			[]string{"reason"},
		),

		OptimizerDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "dfcoptim",
				Name:      "optimizer_duration_seconds",
				Help:      "Duration of optimizer calls in seconds",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"status"},
		),

		ReconstructionGap: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "dfcoptim",
				Name:      "reconstruction_gaps_total",
				Help:      "Optimizer shipment steps that matched no order line",
			},
		),
	}

	m.Registry.MustRegister(
		m.Requests,
		m.SkippedLines,
		m.OptimizerDuration,
		m.ReconstructionGap,
		collectors.NewGoCollector(),
	)

	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
