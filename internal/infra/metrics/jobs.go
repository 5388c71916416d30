package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		generationJobsTotal,
		workoutsGeneratedTotal,
		jobsSweptTotal,
		jobsRunning,
	)
}

var (
	generationJobsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_jobs_total",
			Help: "Total number of generation jobs finished, labeled by status.",
		},
		[]string{"status"}, // 'done', 'error'
	)

	workoutsGeneratedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workouts_generated_total",
			Help: "Total workouts successfully parsed, labeled by focus area.",
		},
		[]string{"focus"},
	)

	jobsSweptTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "generation_jobs_swept_total",
			Help: "Job records evicted by the TTL sweep.",
		},
	)

	jobsRunning = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "generation_jobs_running",
			Help: "Generation jobs currently in the running state.",
		},
	)
)

func IncGenerationJob(status string) {
	generationJobsTotal.WithLabelValues(norm(status)).Inc()
}

func IncWorkoutGenerated(focus string) {
	workoutsGeneratedTotal.WithLabelValues(norm(focus)).Inc()
}

func AddJobsSwept(n int) {
	if n > 0 {
		jobsSweptTotal.Add(float64(n))
	}
}

func JobStarted()  { jobsRunning.Inc() }
func JobFinished() { jobsRunning.Dec() }
