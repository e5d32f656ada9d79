package navigation

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var guardDecisions = sync.OnceValue(func() *prometheus.CounterVec {
	return promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "navigation_guard_decisions_total",
			Help: "Number of route guard evaluations, differentiated by outcome.",
		},
		[]string{"state"},
	)
})
