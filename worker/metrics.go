package worker

import "github.com/prometheus/client_golang/prometheus"

var jobRuns = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "petly_worker_job_runs_total",
		Help: "Scheduled job runs by job and outcome.",
	},
	[]string{"job", "outcome"},
)

func init() {
	prometheus.MustRegister(jobRuns)
}
