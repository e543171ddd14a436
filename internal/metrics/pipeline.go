package metrics

import "github.com/prometheus/client_golang/prometheus"

// Retrieval pipeline and index synchronization metrics.
var (
	ChatRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contentd",
			Name:      "chat_requests_total",
			Help:      "Total chat pipeline invocations",
		},
		[]string{"mode", "outcome"}, // mode: "summary"/"detailed"; outcome: "answered"/"empty"/"degraded"/"invalid"
	)

	ChatRetrievedResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "contentd",
			Name:      "chat_retrieved_results",
			Help:      "Number of resolved documents per chat request",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 20},
		},
	)

	IndexWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contentd",
			Name:      "index_writes_total",
			Help:      "Vector index write operations by trigger and status",
		},
		[]string{"op", "status"}, // op: "create"/"update"/"delete"; status: "ok"/"error"
	)
)
