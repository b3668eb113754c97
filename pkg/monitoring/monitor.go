package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	GradingOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cme_grading_outcomes_total",
			Help: "Graded CME submissions by outcome",
		},
		[]string{"outcome"}, // passed, failed
	)

	CompletionsRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cme_completions_recorded_total",
			Help: "CME completion records written",
		},
	)

	TranscriptExports = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cme_transcript_exports_total",
			Help: "Transcript exports by format",
		},
		[]string{"format"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(GradingOutcomes)
	prometheus.MustRegister(CompletionsRecorded)
	prometheus.MustRegister(TranscriptExports)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
