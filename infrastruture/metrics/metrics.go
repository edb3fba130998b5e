// Package metrics exposes the Prometheus instruments of the service.
package metrics

import (
	"strconv"
	"time"

	"github.com/HeartlessDevil29/Labirint/maze"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "labirint"

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	// Maze metrics
	generationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "maze",
		Name:      "generations_total",
		Help:      "Total maze generation attempts by outcome",
	}, []string{"outcome"})

	generationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "maze",
		Name:      "generation_duration_seconds",
		Help:      "Duration of maze generation attempts",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
	})

	gridCells = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "maze",
		Name:      "grid_cells",
		Help:      "Cell count of generated grids",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
	})

	// Route metrics
	routeFixesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "route",
		Name:      "fixes_total",
		Help:      "Total fixes accepted into route buffers",
	})
)

// Recorder reports service measurements to the package instruments.
// Implements i.MazeMetrics.
type Recorder struct{}

// NewRecorder returns a Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// ObserveGeneration records one maze generation attempt.
func (*Recorder) ObserveGeneration(outcome string, spec maze.GridSpec, elapsed time.Duration) {
	generationsTotal.WithLabelValues(outcome).Inc()
	generationDuration.Observe(elapsed.Seconds())
	if spec.Rows > 0 && spec.Cols > 0 {
		gridCells.Observe(float64(spec.Rows) * float64(spec.Cols))
	}
}

// AddFixes records fixes accepted into route buffers.
func (*Recorder) AddFixes(n int) {
	if n > 0 {
		routeFixesTotal.Add(float64(n))
	}
}

// Middleware records request metrics.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)
	}
}

// Handler returns a gin handler serving the Prometheus /metrics endpoint.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
