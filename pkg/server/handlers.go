package server

import (
	"Petly/handler"
)

type Handlers struct {
	Auth         *handler.Auth
	User         *handler.User
	Pet          *handler.Pet
	Business     *handler.Business
	Appointment  *handler.Appointment
	Points       *handler.Point
	Referral     *handler.Referral
	Notification *handler.Notification
	Upload       *handler.Upload
	Admin        *handler.Admin
}
