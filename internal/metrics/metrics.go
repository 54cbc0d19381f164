package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal *prometheus.CounterVec
	votesCastTotal    prometheus.Counter
	registerOnce      sync.Once
)

// Register initializes Prometheus metrics on the default registry.
func Register() {
	registerOnce.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "masetrack",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed by the masetrack API.",
		}, []string{"method", "path", "status"})

		votesCastTotal = promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "masetrack",
			Name:      "votes_cast_total",
			Help:      "Total poll votes accepted, re-votes included.",
		})
	})
}

// IncRequest increments the http_requests_total counter with the given labels.
func IncRequest(method, path string, status int) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

// IncVote increments the votes_cast_total counter.
func IncVote() {
	if votesCastTotal == nil {
		return
	}
	votesCastTotal.Inc()
}
