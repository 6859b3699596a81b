package metrics

import (
	"net/http"
	"park-course-service/internal/ports"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the service's Prometheus metrics on its own registry.
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	Plans        *prometheus.CounterVec
	PlanDuration *prometheus.HistogramVec
	PlanStops    *prometheus.HistogramVec
	Undos        *prometheus.CounterVec
}

var _ ports.PlanObserver = (*Collector)(nil)

func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		Plans: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "plans_total",
				Help:      "Planning attempts by criterion and outcome",
			},
			[]string{"criterion", "outcome"},
		),
		PlanDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "plan_duration_seconds",
				Help:      "Time spent computing a plan",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"criterion"},
		),
		PlanStops: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "plan_stops",
				Help:      "Mandatory stops requested per planning attempt",
				Buckets:   prometheus.LinearBuckets(1, 1, 10),
			},
			[]string{"criterion"},
		),
		Undos: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "undo_total",
				Help:      "Undo requests by outcome",
			},
			[]string{"outcome"},
		),
	}

	c.registry.MustRegister(c.HTTPRequests, c.HTTPDuration, c.Plans, c.PlanDuration, c.PlanStops, c.Undos)
	return c
}

func (c *Collector) ObservePlan(criterion string, stops int, dur time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	c.Plans.WithLabelValues(criterion, outcome).Inc()
	c.PlanDuration.WithLabelValues(criterion).Observe(dur.Seconds())
	c.PlanStops.WithLabelValues(criterion).Observe(float64(stops))
}

func (c *Collector) ObserveUndo(restored bool) {
	outcome := "restored"
	if !restored {
		outcome = "empty"
	}
	c.Undos.WithLabelValues(outcome).Inc()
}

func (c *Collector) ObserveHTTP(method, route string, status int, dur time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(dur.Seconds())
}

// Handler exposes the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }
