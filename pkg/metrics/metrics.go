package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	IdeasToggled = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ideagen", Name: "ideas_toggled_total", Help: "Number of toggle calls by resulting action."},
		[]string{"action"},
	)
	IdeasDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "ideagen", Name: "ideas_deleted_total", Help: "Number of explicit idea deletions that removed an entry."},
	)
	IdeasEvicted = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ideagen", Name: "ideas_evicted_total", Help: "Number of saved ideas evicted by reason."},
		[]string{"reason"},
	)
	Generations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ideagen", Name: "generations_total", Help: "Number of generation streams opened by category."},
		[]string{"category"},
	)
	GenerationOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ideagen", Name: "generation_outcomes_total", Help: "Number of finished generation streams by outcome."},
		[]string{"outcome"},
	)
	UpstreamErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ideagen", Name: "upstream_errors_total", Help: "Number of upstream provider errors by stage."},
		[]string{"stage"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(IdeasToggled)
	reg.MustRegister(IdeasDeleted)
	reg.MustRegister(IdeasEvicted)
	reg.MustRegister(Generations)
	reg.MustRegister(GenerationOutcomes)
	reg.MustRegister(UpstreamErrors)
}
