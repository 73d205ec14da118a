package utils

import (
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	globalCollector *Collector
	collectorMutex  sync.Mutex
)

// Collector holds the Prometheus metrics for the server.
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	RecommendationsGenerated prometheus.Counter
	MatchesConfirmed         prometheus.Counter
	RequestsResponded        *prometheus.CounterVec
	MessagesSent             prometheus.Counter
	RefreshTasks             *prometheus.CounterVec
}

// NewCollector returns the process-wide collector, creating it on first use
// so repeated calls in tests do not register twice.
func NewCollector(namespace string) *Collector {
	collectorMutex.Lock()
	defer collectorMutex.Unlock()
	if globalCollector != nil {
		return globalCollector
	}

	registry := prometheus.NewRegistry()
	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		RecommendationsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_generated_total",
			Help:      "Total number of recommendations returned",
		}),
		MatchesConfirmed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_confirmed_total",
			Help:      "Total number of confirmed matches",
		}),
		RequestsResponded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "match_requests_responded_total",
			Help:      "Total number of answered match requests",
		}, []string{"action"}),
		MessagesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_messages_sent_total",
			Help:      "Total number of chat messages sent",
		}),
		RefreshTasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_tasks_total",
			Help:      "Recommendation refresh tasks processed",
		}, []string{"status"}),
	}
	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.RecommendationsGenerated,
		c.MatchesConfirmed,
		c.RequestsResponded,
		c.MessagesSent,
		c.RefreshTasks,
		collectors.NewGoCollector(),
	)
	globalCollector = c
	return c
}

// Registry exposes the collector's registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}
