package service

import "github.com/prometheus/client_golang/prometheus"

var (
	grantsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petly_reward_grants_total",
			Help: "Reward grants by action and outcome",
		},
		[]string{"action", "result"},
	)

	transitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petly_appointment_transitions_total",
			Help: "Appointment status changes by target status and outcome",
		},
		[]string{"to", "result"},
	)
)

func init() {
	prometheus.MustRegister(grantsTotal)
	prometheus.MustRegister(transitionsTotal)
}
