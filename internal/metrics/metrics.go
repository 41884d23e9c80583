// Package metrics holds the Prometheus collectors of the calculator.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry owns a private Prometheus registry and the collectors registered on it.
type Registry struct {
	reg *prometheus.Registry

	Submissions        *prometheus.CounterVec
	SchedulesGenerated *prometheus.CounterVec
	GenerationSeconds  prometheus.Histogram
	ChartRenders       *prometheus.CounterVec
	HTTPRequests       *prometheus.CounterVec
}

// NewRegistry creates the collectors and registers them with Go runtime metrics.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		Submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rsu_award_submissions_total",
				Help: "Award submissions by result (accepted, invalid, error)",
			},
			[]string{"result"},
		),
		SchedulesGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rsu_schedules_generated_total",
				Help: "Vesting schedules generated by variant",
			},
			[]string{"variant"},
		),
		GenerationSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rsu_schedule_generation_seconds",
				Help:    "Time spent generating one daily vesting schedule",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
		),
		ChartRenders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rsu_chart_renders_total",
				Help: "Charts rendered by image format",
			},
			[]string{"format"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rsu_http_requests_total",
				Help: "HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
	}

	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.Submissions,
		r.SchedulesGenerated,
		r.GenerationSeconds,
		r.ChartRenders,
		r.HTTPRequests,
	)
	return r
}

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// ObserveRequest counts one served HTTP request.
func (r *Registry) ObserveRequest(method, route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	r.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
