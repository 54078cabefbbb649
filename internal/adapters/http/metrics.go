package httpadapter

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	solvesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tenner",
		Name:      "solves_total",
		Help:      "Solve requests by outcome.",
	}, []string{"outcome"})

	solveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "tenner",
		Name:      "solve_duration_seconds",
		Help:      "Wall time of solver runs.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
	})
)

func observeSolve(d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	solvesTotal.WithLabelValues(outcome).Inc()
	solveDuration.Observe(d.Seconds())
}
