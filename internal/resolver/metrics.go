package resolver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	answersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatkb_answers_total",
		Help: "Fallback answers resolved, by answer source.",
	}, []string{"source"})

	modelFailovers = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chatkb_model_failovers_total",
		Help: "Managed-retrieval model identifiers skipped after a recognized client error.",
	})
)
