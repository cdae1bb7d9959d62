package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	postsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitfeed",
		Subsystem: "posts",
		Name:      "created_total",
		Help:      "Workout posts persisted, by activity type.",
	}, []string{"activity_type"})
	postEventFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitfeed",
		Subsystem: "events",
		Name:      "publish_failures_total",
		Help:      "post.created events that could not be delivered, by sink.",
	}, []string{"sink"})
	authRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitfeed",
		Subsystem: "auth",
		Name:      "requests_total",
		Help:      "Authentication attempts, by operation and outcome.",
	}, []string{"operation", "outcome"})
	feedQueryDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "fitfeed",
		Subsystem: "feed",
		Name:      "query_duration_seconds",
		Help:      "Latency of the feed query against Postgres.",
		Buckets:   prometheus.DefBuckets,
	})
	wsClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fitfeed",
		Subsystem: "ws",
		Name:      "connected_clients",
		Help:      "Websocket clients currently subscribed to feed updates.",
	})
)

func init() {
	prometheus.MustRegister(postsCreated, postEventFailures, authRequests, feedQueryDuration, wsClients)
}

func RecordPostCreated(activityType string) {
	postsCreated.WithLabelValues(activityType).Inc()
}

func RecordPublishFailure(sink string) {
	postEventFailures.WithLabelValues(sink).Inc()
}

// RecordAuth counts an auth attempt; outcome is "ok" or "error".
func RecordAuth(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	authRequests.WithLabelValues(operation, outcome).Inc()
}

func ObserveFeedQuery(started time.Time) {
	feedQueryDuration.Observe(time.Since(started).Seconds())
}

func SetConnectedClients(n int) {
	wsClients.Set(float64(n))
}
