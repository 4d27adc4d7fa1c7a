package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application's Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "peels",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "peels",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	bananasAwarded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "peels",
		Subsystem: "bananas",
		Name:      "awarded_total",
		Help:      "Bananas granted to users.",
	})

	bananasSpent = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "peels",
		Subsystem: "bananas",
		Name:      "spent_total",
		Help:      "Bananas spent in the marketplace.",
	})

	xpAwarded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "peels",
		Subsystem: "xp",
		Name:      "awarded_total",
		Help:      "Experience points granted to users.",
	})

	xpLogsPruned = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "peels",
		Subsystem: "xp",
		Name:      "logs_pruned_total",
		Help:      "XP log rows removed by retention.",
	})

	jobRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "peels",
			Subsystem: "jobs",
			Name:      "runs_total",
			Help:      "Scheduled job runs.",
		},
		[]string{"job", "success"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpRequests,
		httpDuration,
		bananasAwarded,
		bananasSpent,
		xpAwarded,
		xpLogsPruned,
		jobRuns,
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func RecordHTTPRequest(method, path, status string, d time.Duration) {
	httpRequests.WithLabelValues(method, path, status).Inc()
	httpDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

func RecordReward(xp, bananas int) {
	if xp > 0 {
		xpAwarded.Add(float64(xp))
	}
	if bananas > 0 {
		bananasAwarded.Add(float64(bananas))
	}
}

func RecordSpend(bananas int) {
	if bananas > 0 {
		bananasSpent.Add(float64(bananas))
	}
}

func RecordPruned(n int64) {
	xpLogsPruned.Add(float64(n))
}

func RecordJob(job string, err error) {
	success := "true"
	if err != nil {
		success = "false"
	}
	jobRuns.WithLabelValues(job, success).Inc()
}
