package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"Petly/config"
	"Petly/internal/appointment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReminderService(f *fixture) *ReminderService {
	return &ReminderService{
		Config:       &config.WorkerConfig{Concurrency: 2},
		Appointments: f.appointments,
		Parties:      f.parties(),
		Publisher:    f.recorder,
		Now:          func() time.Time { return f.now },
	}
}

func TestReminders_24h(t *testing.T) {
	f := newFixture()
	svc := newReminderService(f)
	ctx := context.Background()

	due := f.seed(appointment.Confirmed, f.now.Add(20*time.Hour), false)
	f.seed(appointment.Confirmed, f.now.Add(30*time.Hour), false)
	f.seed(appointment.Pending, f.now.Add(2*time.Hour), false)
	f.seed(appointment.Confirmed, f.now.Add(-time.Hour), false)

	n, err := svc.Run(ctx, appointment.Reminder24h)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.True(t, f.appointments.get(due.ID).Reminder24hSent)
	assert.NotEmpty(t, f.recorder.Intents())

	// a second pass finds nothing left to send
	f.recorder.Reset()
	n, err = svc.Run(ctx, appointment.Reminder24h)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, f.recorder.Intents())
}

func TestReminders_WindowsAreIndependent(t *testing.T) {
	f := newFixture()
	svc := newReminderService(f)
	a := f.seed(appointment.Confirmed, f.now.Add(30*time.Minute), false)

	n, err := svc.Run(context.Background(), appointment.Reminder24h)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = svc.Run(context.Background(), appointment.Reminder1h)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got := f.appointments.get(a.ID)
	assert.True(t, got.Reminder24hSent)
	assert.True(t, got.Reminder1hSent)
}

func TestReminders_PublishFailureUnmarks(t *testing.T) {
	f := newFixture()
	f.recorder.Err = errors.New("broker down")
	svc := newReminderService(f)
	a := f.seed(appointment.Confirmed, f.now.Add(45*time.Minute), false)

	n, err := svc.Run(context.Background(), appointment.Reminder1h)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.False(t, f.appointments.get(a.ID).Reminder1hSent)
}
