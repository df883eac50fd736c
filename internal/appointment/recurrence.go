package appointment

import (
	"errors"
	"fmt"
	"time"

	"Petly/models"
)

type Interval string

const (
	Weekly      Interval = "1_week"
	Fortnightly Interval = "15_days"
	ThreeWeeks  Interval = "3_weeks"
	Monthly     Interval = "1_month"
)

var ErrRecurrence = errors.New("recurring_interval must be set iff is_recurring")

var fixedSteps = map[Interval]int{
	Weekly:      7,
	Fortnightly: 15,
	ThreeWeeks:  21,
}

func ParseInterval(s string) (Interval, error) {
	iv := Interval(s)
	if _, ok := fixedSteps[iv]; ok || iv == Monthly {
		return iv, nil
	}
	return "", fmt.Errorf("unknown recurring interval %q", s)
}

// NextOccurrence keeps the wall-clock time of day in loc, so a weekly 10:00
// slot stays at 10:00 across DST changes. 1_month is a calendar month in loc,
// clamped to the last day of the target month (Jan 31 -> Feb 28/29).
// The result is in UTC; a nil loc means UTC.
func NextOccurrence(prev time.Time, iv Interval, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	local := prev.In(loc)
	if days, ok := fixedSteps[iv]; ok {
		return local.AddDate(0, 0, days).UTC(), nil
	}
	if iv == Monthly {
		return addMonthClamped(local).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unknown recurring interval %q", iv)
}

func addMonthClamped(t time.Time) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+1, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month(), t.Location()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// ValidateRecurrence enforces recurring_interval != nil <=> is_recurring.
// An empty interval counts as unset.
func ValidateRecurrence(isRecurring bool, interval *string) error {
	if isRecurring != (interval != nil && *interval != "") {
		return ErrRecurrence
	}
	if interval != nil && *interval != "" {
		if _, err := ParseInterval(*interval); err != nil {
			return err
		}
	}
	return nil
}

// NewSuccessor builds the next confirmed occurrence of a recurring appointment.
// The date is stepped in loc, the business's local time.
func NewSuccessor(parent *models.Appointment, loc *time.Location, now time.Time) (*models.Appointment, error) {
	if !parent.IsRecurring || parent.RecurringInterval == nil {
		return nil, ErrRecurrence
	}
	iv, err := ParseInterval(*parent.RecurringInterval)
	if err != nil {
		return nil, err
	}
	next, err := NextOccurrence(parent.AppointmentDate, iv, loc)
	if err != nil {
		return nil, err
	}

	parentID := parent.ID
	interval := string(iv)
	confirmedAt := now
	return &models.Appointment{
		UserID:              parent.UserID,
		BusinessID:          parent.BusinessID,
		PetID:               parent.PetID,
		ServiceID:           parent.ServiceID,
		ClientEmail:         parent.ClientEmail,
		BookingID:           parent.BookingID,
		AppointmentDate:     next,
		Status:              string(Confirmed),
		IsRecurring:         true,
		RecurringInterval:   &interval,
		ParentAppointmentID: &parentID,
		Notes:               parent.Notes,
		ConfirmedAt:         &confirmedAt,
	}, nil
}
