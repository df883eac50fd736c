package loyalty

import (
	"errors"
	"fmt"
)

type Action string

const (
	ProfileCompleted     Action = "profile_completed"
	PetRegistered        Action = "pet_registered"
	PetUpdated           Action = "pet_updated"
	PetPhotoUploaded     Action = "pet_photo_uploaded"
	AppointmentBooked    Action = "appointment_booked"
	AppointmentCompleted Action = "appointment_completed"
	AppointmentMilestone Action = "appointment_milestone"
	ReviewSubmitted      Action = "review_submitted"
	EarlyCancellation    Action = "early_cancellation"
	ReferralUser         Action = "referral_user"
	ReferralBusiness     Action = "referral_business"
	ManualAdjustment     Action = "manual_adjustment"
)

var ErrUnknownAction = errors.New("unknown reward action")

type rule struct {
	points      int64
	stars       int
	description string
}

// Milestone and manual grants carry a variable amount, resolved by the caller.
var rules = map[Action]rule{
	ProfileCompleted:     {50, 0, "Perfil completado"},
	PetRegistered:        {40, 0, "Mascota registrada"},
	PetUpdated:           {10, 0, "Perfil de mascota actualizado"},
	PetPhotoUploaded:     {15, 0, "Foto de mascota subida"},
	AppointmentBooked:    {30, 0, "Cita reservada"},
	AppointmentCompleted: {40, 0, "Cita completada"},
	AppointmentMilestone: {0, 0, "Bonificación por hito de citas"},
	ReviewSubmitted:      {30, 1, "Reseña enviada"},
	EarlyCancellation:    {10, 0, "Cancelación anticipada"},
	ReferralUser:         {150, 0, "Referido: nuevo usuario"},
	ReferralBusiness:     {250, 0, "Referido: nuevo negocio"},
	ManualAdjustment:     {0, 0, "Ajuste manual"},
}

func (a Action) Valid() bool {
	_, ok := rules[a]
	return ok
}

// PointsFor returns the fixed award of an action; zero for variable ones.
func PointsFor(a Action) int64 {
	return rules[a].points
}

func StarsFor(a Action) int {
	return rules[a].stars
}

// Describe returns the user-facing description stored on the audit record.
func Describe(a Action) string {
	if r, ok := rules[a]; ok {
		return r.description
	}
	return string(a)
}

// Award resolves what a grant of a credits. amount is used only by variable actions.
func Award(a Action, amount int64) (points int64, stars int, err error) {
	r, ok := rules[a]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s", ErrUnknownAction, a)
	}
	if r.points > 0 {
		return r.points, r.stars, nil
	}
	if amount <= 0 {
		return 0, 0, fmt.Errorf("action %s requires a positive amount", a)
	}
	return amount, r.stars, nil
}
