package service

import (
	"Petly/config"
	"Petly/internal/appointment"
	"Petly/models"
	"Petly/pkg/log"
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// PartyLoader gathers the names and addresses intents need for an appointment.
type PartyLoader struct {
	Config     *config.Config
	Users      UserStore
	Businesses BusinessStore
	Pets       PetStore
	Services   ServiceStore
}

func (l *PartyLoader) Load(ctx context.Context, a *models.Appointment) (appointment.Parties, *models.Business, error) {
	biz, err := l.Businesses.FindById(ctx, a.BusinessID)
	if err != nil {
		return appointment.Parties{}, nil, notFound(err)
	}

	p := appointment.Parties{
		ClientID:     a.UserID,
		ClientEmail:  a.ClientEmail,
		OwnerID:      biz.OwnerID,
		BusinessName: biz.Name,
		PetName:      "tu mascota",
		ServiceName:  "el servicio",
		BaseURL:      l.baseURL(),
		Location:     l.location(),
	}

	// names are cosmetic: a deleted pet or service must not block a transition
	if u, err := l.Users.FindById(ctx, a.UserID); err == nil {
		p.ClientName = u.DisplayName
		if p.ClientEmail == "" {
			p.ClientEmail = u.Email
		}
	} else {
		log.L.Warn("party loader: client lookup failed", zap.Uint64("appointment_id", a.ID), zap.Error(err))
	}
	if pet, err := l.Pets.FindById(ctx, a.PetID); err == nil {
		p.PetName = pet.Name
	}
	if svc, err := l.Services.FindById(ctx, a.ServiceID); err == nil {
		p.ServiceName = svc.Name
	}
	return p, biz, nil
}

func (l *PartyLoader) baseURL() string {
	if l.Config == nil {
		return ""
	}
	return strings.TrimRight(l.Config.App.BaseURL, "/")
}

func (l *PartyLoader) location() *time.Location {
	if l.Config == nil || l.Config.App.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(l.Config.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
