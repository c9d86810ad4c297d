package server

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"biodesigner/internal/codon"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "biodesigner",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route and status code",
	}, []string{"route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "biodesigner",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	// optimizationScoreGain is optimized minus original score per circuit run.
	optimizationScoreGain = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "biodesigner",
		Subsystem: "optimizer",
		Name:      "score_gain",
		Help:      "Score improvement of circuit optimizations",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"goal"})

	optimizationAccepted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "biodesigner",
		Subsystem: "optimizer",
		Name:      "accepted_moves_total",
		Help:      "Accepted mutations across circuit optimizations",
	}, []string{"goal"})

	codonChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "biodesigner",
		Subsystem: "codon",
		Name:      "changes_total",
		Help:      "Codons rewritten by the codon optimizer",
	}, []string{"organism"})
)

func observeRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// organismLabel keeps the organism label set bounded to the built-in hosts.
func organismLabel(organism string) string {
	if _, ok := codon.Builtin(organism); ok {
		return codon.NormalizeOrganism(organism)
	}
	return "other"
}
