package appointment

import (
	"fmt"
	"time"

	"Petly/internal/effect"
	"Petly/models"
)

type ReminderWindow string

const (
	Reminder24h ReminderWindow = "24h"
	Reminder1h  ReminderWindow = "1h"
)

func (w ReminderWindow) Lead() time.Duration {
	if w == Reminder1h {
		return time.Hour
	}
	return 24 * time.Hour
}

// Reminder plans the reminder for a confirmed appointment. The 24h window adds an e-mail.
func Reminder(a *models.Appointment, p Parties, w ReminderWindow) ([]effect.Intent, error) {
	if Status(a.Status) != Confirmed {
		return nil, fmt.Errorf("%w: reminders apply to confirmed appointments", ErrInvalidTransition)
	}
	when := FormatDate(a.AppointmentDate, p.Location)

	title := "Tu cita es mañana"
	if w == Reminder1h {
		title = "Tu cita es en una hora"
	}
	intents := []effect.Intent{
		effect.NewNotification(fmt.Sprintf("reminder%s:%d:client", w, a.ID), effect.Notification{
			UserID:        a.UserID,
			Type:          NoticeReminder,
			Title:         title,
			Message:       fmt.Sprintf("%s en %s, %s.", p.ServiceName, p.BusinessName, when),
			Link:          fmt.Sprintf("/appointments/%d", a.ID),
			AppointmentID: a.ID,
		}),
	}
	if w == Reminder24h {
		mail, err := effect.MailIntent(fmt.Sprintf("reminder%s:%d:email", w, a.ID), p.ClientEmail, effect.Mail{
			Title:    "Recordatorio de tu cita",
			Greeting: p.greeting(),
			Lines: []string{
				fmt.Sprintf("Te recordamos la cita de %s en %s (%s).", p.PetName, p.BusinessName, p.ServiceName),
				"Fecha: " + when,
			},
			ActionURL:   p.link("/appointments/%d", a.ID),
			ActionLabel: "Ver cita",
		})
		if err != nil {
			return nil, err
		}
		intents = append(intents, mail)
	}
	return intents, nil
}
