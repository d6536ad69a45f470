// Package metrics counts gameplay events with Prometheus
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder owns the gameplay counters
type Recorder struct {
	battles       *prometheus.CounterVec
	itemsUsed     *prometheus.CounterVec
	itemsEquipped *prometheus.CounterVec
	levelUps      prometheus.Counter
}

// New registers the counters with reg. A nil reg gets a private registry,
// which keeps the counters working without exporting them.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Recorder{
		battles: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      MetricNameBattlesTotal,
				Help:      HelpTextBattlesTotal,
			},
			[]string{LabelEnemy, LabelOutcome},
		),
		itemsUsed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      MetricNameItemsUsedTotal,
				Help:      HelpTextItemsUsedTotal,
			},
			[]string{LabelItem},
		),
		itemsEquipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      MetricNameItemsEquippedTotal,
				Help:      HelpTextItemsEquippedTotal,
			},
			[]string{LabelItem},
		),
		levelUps: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      MetricNameLevelUpsTotal,
				Help:      HelpTextLevelUpsTotal,
			},
		),
	}
}

// BattleResolved counts a finished battle
func (r *Recorder) BattleResolved(enemy, outcome string) {
	r.battles.WithLabelValues(enemy, outcome).Inc()
}

// ItemUsed counts a consumed item
func (r *Recorder) ItemUsed(item string) {
	r.itemsUsed.WithLabelValues(item).Inc()
}

// ItemEquipped counts an equipped item
func (r *Recorder) ItemEquipped(item string) {
	r.itemsEquipped.WithLabelValues(item).Inc()
}

// LevelsGained counts levels; zero is a no-op
func (r *Recorder) LevelsGained(n int) {
	if n > 0 {
		r.levelUps.Add(float64(n))
	}
}

// Handler exposes a registry in the Prometheus text format
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Outcome maps a battle result onto the outcome label
func Outcome(victory, stalemate bool) string {
	switch {
	case victory:
		return OutcomeVictory
	case stalemate:
		return OutcomeStalemate
	default:
		return OutcomeDefeat
	}
}
