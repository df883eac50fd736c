package service

import (
	"Petly/config"
	"Petly/internal/appointment"
	"Petly/internal/effect"
	"Petly/pkg/log"
	"context"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

const reminderBatch = 200

var _ IReminderService = (*ReminderService)(nil)

type IReminderService interface {
	// Run sends the due reminders of window w and returns how many were published.
	Run(ctx context.Context, w appointment.ReminderWindow) (int64, error)
}

type ReminderService struct {
	Config       *config.WorkerConfig
	Appointments AppointmentStore
	Parties      *PartyLoader
	Publisher    effect.Publisher
	Now          func() time.Time `wire:"-"`
}

func (s *ReminderService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *ReminderService) concurrency() int {
	if s.Config == nil || s.Config.Concurrency <= 0 {
		return 4
	}
	return s.Config.Concurrency
}

func (s *ReminderService) Run(ctx context.Context, w appointment.ReminderWindow) (int64, error) {
	due, err := s.Appointments.ListDueReminders(ctx, w, s.now(), reminderBatch)
	if err != nil {
		return 0, err
	}

	var sent atomic.Int64
	p := pool.New().WithMaxGoroutines(s.concurrency())
	for _, a := range due {
		p.Go(func() {
			// the flag flips before publishing so concurrent workers never double send
			ok, err := s.Appointments.MarkReminderSent(ctx, a.ID, w)
			if err != nil || !ok {
				if err != nil {
					log.L.Error("mark reminder failed", zap.Uint64("appointment_id", a.ID), zap.Error(err))
				}
				return
			}

			intents, err := s.plan(ctx, a.ID, w)
			if err == nil {
				err = s.Publisher.Publish(ctx, intents...)
			}
			if err != nil {
				log.L.Error("reminder failed",
					zap.Uint64("appointment_id", a.ID),
					zap.String("window", string(w)),
					zap.Error(err),
				)
				if uerr := s.Appointments.UnmarkReminderSent(ctx, a.ID, w); uerr != nil {
					log.L.Error("unmark reminder failed", zap.Uint64("appointment_id", a.ID), zap.Error(uerr))
				}
				return
			}
			sent.Add(1)
		})
	}
	p.Wait()
	return sent.Load(), nil
}

func (s *ReminderService) plan(ctx context.Context, id uint64, w appointment.ReminderWindow) ([]effect.Intent, error) {
	a, err := s.Appointments.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	p, _, err := s.Parties.Load(ctx, a)
	if err != nil {
		return nil, err
	}
	return appointment.Reminder(a, p, w)
}
