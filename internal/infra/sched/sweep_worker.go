package sched

import (
	"context"
	"time"

	"crux-coach/internal/domain/ports/repository"
	"crux-coach/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// SweepWorker periodically evicts generation jobs that have passed their TTL.
// Sweeps also run opportunistically on every Start/Status request, so this
// worker only covers idle periods with no inbound traffic.
type SweepWorker struct {
	interval time.Duration
	ttl      time.Duration
	jobs     repository.JobStore
	log      *zerolog.Logger
}

func NewSweepWorker(interval, ttl time.Duration, jobs repository.JobStore, logger *zerolog.Logger) *SweepWorker {
	swLog := logger.With().Str("component", "SweepWorker").Logger()
	return &SweepWorker{
		interval: interval,
		ttl:      ttl,
		jobs:     jobs,
		log:      &swLog,
	}
}

func (w *SweepWorker) Run(ctx context.Context) error {
	w.log.Info().Dur("interval", w.interval).Dur("ttl", w.ttl).Msg("Starting job sweep worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping job sweep worker")
			return ctx.Err()
		case <-ticker.C:
			if n := w.jobs.SweepExpired(ctx, w.ttl); n > 0 {
				metrics.AddJobsSwept(n)
				w.log.Info().Int("count", n).Msg("expired jobs evicted")
			}
		}
	}
}
