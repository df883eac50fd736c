package worker

import (
	"context"
	"time"

	"Petly/config"
	"Petly/internal/appointment"
	"Petly/pkg/log"
	"Petly/service"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs the periodic jobs: appointment reminders and redemption expiry.
type Scheduler struct {
	Config      *config.WorkerConfig
	Reminders   service.IReminderService
	Redemptions service.IRedemptionService
}

type job struct {
	spec string
	name string
	fn   func(ctx context.Context) (int64, error)
}

func (s *Scheduler) jobs() []job {
	return []job{
		{s.Config.ReminderSpec, "reminder_24h", func(ctx context.Context) (int64, error) {
			return s.Reminders.Run(ctx, appointment.Reminder24h)
		}},
		{s.Config.ReminderSpec, "reminder_1h", func(ctx context.Context) (int64, error) {
			return s.Reminders.Run(ctx, appointment.Reminder1h)
		}},
		{s.Config.ExpirySpec, "redemption_expiry", s.Redemptions.ExpireDue},
	}
}

// Run registers the jobs and blocks until ctx is done, then waits for
// running jobs to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger), cron.Recover(cron.DiscardLogger)))
	for _, j := range s.jobs() {
		if _, err := c.AddFunc(j.spec, func() { s.runJob(ctx, j.name, j.fn) }); err != nil {
			return err
		}
	}
	c.Start()
	log.L.Info("scheduler started", zap.String("reminder_spec", s.Config.ReminderSpec), zap.String("expiry_spec", s.Config.ExpirySpec))

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

func (s *Scheduler) runJob(ctx context.Context, name string, fn func(ctx context.Context) (int64, error)) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	n, err := fn(ctx)
	jobRuns.WithLabelValues(name, outcome(err)).Inc()
	if err != nil {
		log.L.Error("job failed", zap.String("job", name), zap.Error(err))
		return
	}
	log.L.Info("job done", zap.String("job", name), zap.Int64("items", n), zap.Duration("took", time.Since(start)))
}

func outcome(err error) string {
	if err != nil {
		return "failed"
	}
	return "ok"
}
