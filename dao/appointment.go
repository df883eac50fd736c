package dao

import (
	"Petly/internal/appointment"
	"Petly/models"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Appointments struct {
	Repo[models.Appointment]
}

func NewAppointments(db *gorm.DB) *Appointments {
	return &Appointments{Repo: NewRepo[models.Appointment](db)}
}

// CreateBatch inserts all appointments of one booking atomically.
func (a *Appointments) CreateBatch(ctx context.Context, items []*models.Appointment) error {
	if len(items) == 0 {
		return nil
	}
	err := a.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&items).Error
	})
	if err != nil {
		return fmt.Errorf("dao.Appointments.CreateBatch error: %w", err)
	}
	return nil
}

// CompareAndSetStatus moves an appointment to `to` only from one of `from`.
func (a *Appointments) CompareAndSetStatus(ctx context.Context, id uint64, to appointment.Status, from []string, fields map[string]any) (bool, error) {
	if len(from) == 0 {
		return false, nil
	}
	updates := map[string]any{"status": string(to)}
	for k, v := range fields {
		updates[k] = v
	}
	res := a.Db.WithContext(ctx).Model(&models.Appointment{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, fmt.Errorf("dao.Appointments.CompareAndSetStatus error: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

type ConfirmResult struct {
	Changed bool
	Created bool
	Current appointment.Status
}

// Confirm sets pending -> confirmed and inserts the successor in the same
// transaction. A successor that already exists for the parent is kept.
// Calling it on an already confirmed appointment only ensures the successor.
func (a *Appointments) Confirm(ctx context.Context, id uint64, at time.Time, successor *models.Appointment) (*ConfirmResult, error) {
	var out ConfirmResult
	err := a.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Appointment{}).
			Where("id = ? AND status = ?", id, string(appointment.Pending)).
			Updates(map[string]any{"status": string(appointment.Confirmed), "confirmed_at": at})
		if res.Error != nil {
			return res.Error
		}
		out.Changed = res.RowsAffected == 1
		out.Current = appointment.Confirmed

		if !out.Changed {
			var current models.Appointment
			if err := tx.Select("id", "status").Where("id = ?", id).First(&current).Error; err != nil {
				return err
			}
			out.Current = appointment.Status(current.Status)
			if out.Current != appointment.Confirmed {
				return nil
			}
		}

		if successor == nil {
			return nil
		}
		ins := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(successor)
		if ins.Error != nil {
			return ins.Error
		}
		out.Created = ins.RowsAffected == 1
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("dao.Appointments.Confirm error: %w", err)
	}
	return &out, nil
}

func (a *Appointments) FindSuccessor(ctx context.Context, parentID uint64) (*models.Appointment, error) {
	return a.Repo.FindByWhere(ctx, "parent_appointment_id = ?", parentID)
}

func (a *Appointments) CountCompletedByUser(ctx context.Context, userID uint64) (int64, error) {
	return a.Repo.Count(ctx, "user_id = ? AND status = ?", userID, string(appointment.Completed))
}

type ListFilter struct {
	UserID     uint64
	BusinessID uint64
	Status     string
	Cursor     uint64
	Limit      int
}

func (a *Appointments) List(ctx context.Context, f ListFilter) ([]*models.Appointment, error) {
	q := a.Db.WithContext(ctx).Model(&models.Appointment{})
	if f.UserID > 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.BusinessID > 0 {
		q = q.Where("business_id = ?", f.BusinessID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return Page[models.Appointment](q, f.Cursor, f.Limit)
}

func reminderColumn(w appointment.ReminderWindow) string {
	if w == appointment.Reminder1h {
		return "reminder_1h_sent"
	}
	return "reminder_24h_sent"
}

// ListDueReminders returns confirmed appointments starting within the window whose flag is unset.
func (a *Appointments) ListDueReminders(ctx context.Context, w appointment.ReminderWindow, now time.Time, limit int) ([]*models.Appointment, error) {
	var items []*models.Appointment
	err := a.Db.WithContext(ctx).
		Where("status = ? AND appointment_date > ? AND appointment_date <= ?", string(appointment.Confirmed), now, now.Add(w.Lead())).
		Where(reminderColumn(w)+" = ?", false).
		Order("appointment_date ASC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

// MarkReminderSent flips the flag once; false means another worker already did.
func (a *Appointments) MarkReminderSent(ctx context.Context, id uint64, w appointment.ReminderWindow) (bool, error) {
	col := reminderColumn(w)
	res := a.Db.WithContext(ctx).Model(&models.Appointment{}).
		Where("id = ? AND "+col+" = ?", id, false).
		Update(col, true)
	return res.RowsAffected == 1, res.Error
}

// UnmarkReminderSent restores the flag after the reminder could not be published.
func (a *Appointments) UnmarkReminderSent(ctx context.Context, id uint64, w appointment.ReminderWindow) error {
	col := reminderColumn(w)
	return a.Db.WithContext(ctx).Model(&models.Appointment{}).Where("id = ?", id).Update(col, false).Error
}

// MarkReviewSent flips review_sent for a completed, unreviewed appointment.
func (a *Appointments) MarkReviewSent(ctx context.Context, id uint64) (bool, error) {
	res := a.Db.WithContext(ctx).Model(&models.Appointment{}).
		Where("id = ? AND status = ? AND review_sent = ? AND review_submitted = ?", id, string(appointment.Completed), false, false).
		Update("review_sent", true)
	return res.RowsAffected == 1, res.Error
}

var ErrAlreadyReviewed = errors.New("appointment already reviewed")

// SubmitReview stores the review and flags the appointment in one transaction.
func (a *Appointments) SubmitReview(ctx context.Context, review *models.Review) error {
	return a.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Appointment{}).
			Where("id = ? AND status = ? AND review_submitted = ?", review.AppointmentID, string(appointment.Completed), false).
			Update("review_submitted", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyReviewed
		}
		return tx.Create(review).Error
	})
}

func (a *Appointments) ListByBooking(ctx context.Context, userID uint64, bookingID string) ([]*models.Appointment, error) {
	var items []*models.Appointment
	err := a.Db.WithContext(ctx).
		Where("user_id = ? AND booking_id = ? AND parent_appointment_id IS NULL", userID, bookingID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}
