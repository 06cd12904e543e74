package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "huffctl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "huffctl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
	codecRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "huffctl",
			Subsystem: "codec",
			Name:      "runs_total",
			Help:      "Codec runs by operation and result.",
		},
		[]string{"node", "op", "result"},
	)
	codecBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "huffctl",
			Subsystem: "codec",
			Name:      "bytes_total",
			Help:      "Bytes consumed and produced by codec runs.",
		},
		[]string{"node", "op", "direction"},
	)
	codecDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "huffctl",
			Subsystem: "codec",
			Name:      "run_duration_seconds",
			Help:      "Codec run duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "op"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, codecRuns, codecBytes, codecDuration)
	})
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

func RecordCodecRun(node, op string, in, out uint64, duration time.Duration, success bool) {
	RegisterMetrics()
	result := "ok"
	if !success {
		result = "error"
	}
	codecRuns.WithLabelValues(node, op, result).Inc()
	codecDuration.WithLabelValues(node, op).Observe(duration.Seconds())
	codecBytes.WithLabelValues(node, op, "in").Add(float64(in))
	codecBytes.WithLabelValues(node, op, "out").Add(float64(out))
}
