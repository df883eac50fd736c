package appointment

import (
	"fmt"
	"time"

	"Petly/internal/effect"
	"Petly/models"
)

type Actor string

const (
	ActorClient   Actor = "client"
	ActorBusiness Actor = "business"
)

// Notification types.
const (
	NoticeConfirmed  = "appointment_confirmed"
	NoticeCancelled  = "appointment_cancelled"
	NoticeCompleted  = "appointment_completed"
	NoticeRecurring  = "recurring_created"
	NoticeBooking    = "booking_received"
	NoticeReminder   = "appointment_reminder"
	NoticeReviewSent = "review_requested"
)

// Parties carries what intents need to address and describe an appointment.
type Parties struct {
	ClientID     uint64
	ClientName   string
	ClientEmail  string
	OwnerID      uint64
	BusinessName string
	PetName      string
	ServiceName  string
	BaseURL      string
	Location     *time.Location
}

func (p Parties) link(format string, args ...any) string {
	return p.BaseURL + fmt.Sprintf(format, args...)
}

func (p Parties) greeting() string {
	if p.ClientName == "" {
		return "Hola,"
	}
	return "Hola " + p.ClientName + ","
}

// Outcome is the result of planning a transition. Replay is set when the
// appointment already was in the target state; nothing must be re-sent then.
type Outcome struct {
	From    Status
	To      Status
	Replay  bool
	Intents []effect.Intent
}

func plan(a *models.Appointment, to Status) (*Outcome, error) {
	from := Status(a.Status)
	if from == to {
		return &Outcome{From: from, To: to, Replay: true}, nil
	}
	if !CanTransition(from, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return &Outcome{From: from, To: to}, nil
}

// Confirm plans pending -> confirmed: confirmation e-mail and notification to the client.
// Successor creation for recurring appointments is planned by SuccessorIntents.
func Confirm(a *models.Appointment, p Parties) (*Outcome, error) {
	out, err := plan(a, Confirmed)
	if err != nil || out.Replay {
		return out, err
	}

	when := FormatDate(a.AppointmentDate, p.Location)
	mail, err := effect.MailIntent(fmt.Sprintf("confirm:%d:email", a.ID), p.ClientEmail, effect.Mail{
		Title:    "Tu cita ha sido confirmada",
		Greeting: p.greeting(),
		Lines: []string{
			fmt.Sprintf("%s ha confirmado la cita de %s para %s.", p.BusinessName, p.PetName, p.ServiceName),
			"Fecha: " + when,
		},
		ActionURL:   p.link("/appointments/%d", a.ID),
		ActionLabel: "Ver cita",
	})
	if err != nil {
		return nil, err
	}
	out.Intents = append(out.Intents, mail, effect.NewNotification(fmt.Sprintf("confirm:%d:client", a.ID), effect.Notification{
		UserID:        a.UserID,
		Type:          NoticeConfirmed,
		Title:         "Cita confirmada",
		Message:       fmt.Sprintf("%s confirmó tu cita del %s.", p.BusinessName, when),
		Link:          fmt.Sprintf("/appointments/%d", a.ID),
		AppointmentID: a.ID,
	}))
	return out, nil
}

// SuccessorIntents announces a generated occurrence to both sides plus an e-mail to the client.
func SuccessorIntents(parent, successor *models.Appointment, p Parties) ([]effect.Intent, error) {
	when := FormatDate(successor.AppointmentDate, p.Location)
	mail, err := effect.MailIntent(fmt.Sprintf("recurring:%d:email", parent.ID), p.ClientEmail, effect.Mail{
		Title:    "Nueva cita recurrente programada",
		Greeting: p.greeting(),
		Lines: []string{
			fmt.Sprintf("Hemos programado la próxima cita de %s en %s (%s).", p.PetName, p.BusinessName, p.ServiceName),
			"Fecha: " + when,
			"Si no puedes asistir, cancélala con al menos 24 horas de antelación.",
		},
		ActionURL:   p.link("/appointments/%d", successor.ID),
		ActionLabel: "Ver cita",
	})
	if err != nil {
		return nil, err
	}
	return []effect.Intent{
		effect.NewNotification(fmt.Sprintf("recurring:%d:client", parent.ID), effect.Notification{
			UserID:        successor.UserID,
			Type:          NoticeRecurring,
			Title:         "Nueva cita recurrente",
			Message:       fmt.Sprintf("Tu próxima cita en %s es el %s.", p.BusinessName, when),
			Link:          fmt.Sprintf("/appointments/%d", successor.ID),
			AppointmentID: successor.ID,
		}),
		effect.NewNotification(fmt.Sprintf("recurring:%d:business", parent.ID), effect.Notification{
			UserID:        p.OwnerID,
			Type:          NoticeRecurring,
			Title:         "Cita recurrente generada",
			Message:       fmt.Sprintf("Se generó una nueva cita de %s para el %s.", p.PetName, when),
			Link:          fmt.Sprintf("/business/appointments/%d", successor.ID),
			AppointmentID: successor.ID,
		}),
		mail,
	}, nil
}

// Cancel plans a cancellation. The business side only notifies the client,
// without e-mail; the client side notifies the business owner.
func Cancel(a *models.Appointment, by Actor, p Parties) (*Outcome, error) {
	out, err := plan(a, Cancelled)
	if err != nil || out.Replay {
		return out, err
	}

	when := FormatDate(a.AppointmentDate, p.Location)
	switch by {
	case ActorBusiness:
		out.Intents = append(out.Intents, effect.NewNotification(fmt.Sprintf("cancel:%d:client", a.ID), effect.Notification{
			UserID:        a.UserID,
			Type:          NoticeCancelled,
			Title:         "Cita cancelada",
			Message:       fmt.Sprintf("%s canceló tu cita del %s.", p.BusinessName, when),
			Link:          fmt.Sprintf("/appointments/%d", a.ID),
			AppointmentID: a.ID,
		}))
	case ActorClient:
		out.Intents = append(out.Intents, effect.NewNotification(fmt.Sprintf("cancel:%d:business", a.ID), effect.Notification{
			UserID:        p.OwnerID,
			Type:          NoticeCancelled,
			Title:         "Cita cancelada por el cliente",
			Message:       fmt.Sprintf("La cita de %s del %s fue cancelada.", p.PetName, when),
			Link:          fmt.Sprintf("/business/appointments/%d", a.ID),
			AppointmentID: a.ID,
		}))
	default:
		return nil, fmt.Errorf("unknown actor %q", by)
	}
	return out, nil
}

// Complete plans confirmed -> completed. Grants are applied by the caller.
func Complete(a *models.Appointment, p Parties) (*Outcome, error) {
	out, err := plan(a, Completed)
	if err != nil || out.Replay {
		return out, err
	}
	out.Intents = append(out.Intents, effect.NewNotification(fmt.Sprintf("complete:%d:client", a.ID), effect.Notification{
		UserID:        a.UserID,
		Type:          NoticeCompleted,
		Title:         "Cita completada",
		Message:       fmt.Sprintf("¡Gracias por visitar %s! Has sumado puntos por tu cita.", p.BusinessName),
		Link:          fmt.Sprintf("/appointments/%d", a.ID),
		AppointmentID: a.ID,
	}))
	return out, nil
}

// RequestReview plans the review e-mail for a completed, not yet reviewed appointment.
func RequestReview(a *models.Appointment, p Parties, reviewURL string) ([]effect.Intent, error) {
	if Status(a.Status) != Completed {
		return nil, fmt.Errorf("%w: review requires a completed appointment", ErrInvalidTransition)
	}
	if a.ReviewSent || a.ReviewSubmitted {
		return nil, fmt.Errorf("%w: review already requested", ErrInvalidTransition)
	}
	mail, err := effect.MailIntent(fmt.Sprintf("review:%d:email", a.ID), p.ClientEmail, effect.Mail{
		Title:    "¿Qué tal fue tu visita?",
		Greeting: p.greeting(),
		Lines: []string{
			fmt.Sprintf("Cuéntanos cómo fue la visita de %s a %s.", p.PetName, p.BusinessName),
			"Tu reseña suma 30 puntos y una estrella de fidelidad.",
		},
		ActionURL:   reviewURL,
		ActionLabel: "Dejar reseña",
	})
	if err != nil {
		return nil, err
	}
	return []effect.Intent{
		mail,
		effect.NewNotification(fmt.Sprintf("review:%d:client", a.ID), effect.Notification{
			UserID:        a.UserID,
			Type:          NoticeReviewSent,
			Title:         "Valora tu visita",
			Message:       fmt.Sprintf("Deja una reseña de %s y gana puntos.", p.BusinessName),
			Link:          reviewURL,
			AppointmentID: a.ID,
		}),
	}, nil
}

// Booked plans the intents of a new booking: one notice to the business owner
// and one receipt e-mail to the client, whatever the number of services.
func Booked(items []*models.Appointment, p Parties, services []string) ([]effect.Intent, error) {
	if len(items) == 0 {
		return nil, nil
	}
	first := items[0]
	when := FormatDate(first.AppointmentDate, p.Location)

	lines := []string{fmt.Sprintf("Hemos recibido tu reserva en %s para %s.", p.BusinessName, p.PetName), "Fecha: " + when}
	for _, s := range services {
		lines = append(lines, "• "+s)
	}
	lines = append(lines, "Te avisaremos cuando el negocio la confirme.")

	mail, err := effect.MailIntent(fmt.Sprintf("booking:%s:email", first.BookingID), p.ClientEmail, effect.Mail{
		Title:       "Reserva recibida",
		Greeting:    p.greeting(),
		Lines:       lines,
		ActionURL:   p.link("/appointments"),
		ActionLabel: "Ver mis citas",
	})
	if err != nil {
		return nil, err
	}
	return []effect.Intent{
		effect.NewNotification(fmt.Sprintf("booking:%s:business", first.BookingID), effect.Notification{
			UserID:        p.OwnerID,
			Type:          NoticeBooking,
			Title:         "Nueva reserva",
			Message:       fmt.Sprintf("%s reservó %d servicio(s) para %s el %s.", p.ClientName, len(items), p.PetName, when),
			Link:          "/business/appointments",
			AppointmentID: first.ID,
		}),
		mail,
	}, nil
}
