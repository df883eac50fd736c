package effect

import "github.com/prometheus/client_golang/prometheus"

var intentsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "petly_effect_intents_total",
		Help: "Side-effect intents handled by outcome",
	},
	[]string{"kind", "result"},
)

func init() {
	prometheus.MustRegister(intentsTotal)
}
