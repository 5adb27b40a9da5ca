package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes the engine counters on /metrics.
type Metrics struct {
	AdmissionsTotal  *prometheus.CounterVec
	TransitionsTotal *prometheus.CounterVec
	PromotionsTotal  prometheus.Counter
	PromotionScans   prometheus.Counter
	UndosTotal       prometheus.Counter
	CascadeReverts   prometheus.Counter
}

func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the counters on the given registerer; tests pass a fresh
// registry to avoid duplicate registration panics.
func NewWith(r prometheus.Registerer) *Metrics {
	factory := promauto.With(r)

	return &Metrics{
		AdmissionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "workshop_admissions_total",
			Help: "Total bookings admitted, by initial status",
		}, []string{"status"}),

		TransitionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "workshop_transitions_total",
			Help: "Total booking status transitions, by target status",
		}, []string{"status"}),

		PromotionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "workshop_promotions_total",
			Help: "Total waiting bookings promoted to ready",
		}),

		PromotionScans: factory.NewCounter(prometheus.CounterOpts{
			Name: "workshop_promotion_scans_total",
			Help: "Total promotion scans executed",
		}),

		UndosTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "workshop_undos_total",
			Help: "Total undo operations applied",
		}),

		CascadeReverts: factory.NewCounter(prometheus.CounterOpts{
			Name: "workshop_cascade_reverts_total",
			Help: "Total bookings reverted to waiting by an undo cascade",
		}),
	}
}
