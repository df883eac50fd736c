package service

import (
	"Petly/dao"
	"Petly/internal/appointment"
	"Petly/internal/effect"
	"Petly/internal/loyalty"
	"Petly/models"
	"Petly/pkg/log"
	"Petly/pkg/snowflake"
	"Petly/pkg/utils"
	"Petly/types"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const bookingScope = "booking"

var _ IAppointmentService = (*AppointmentService)(nil)

type IAppointmentService interface {
	// Book creates one pending appointment per service under a shared booking id.
	// A repeated idemKey returns the first booking instead of creating another.
	Book(ctx context.Context, s *types.Session, req *types.BookReq, idemKey string) (*types.BookResp, error)
	Get(ctx context.Context, s *types.Session, id uint64) (*types.AppointmentResp, error)
	List(ctx context.Context, s *types.Session, req *types.ListAppointmentsReq) (*types.ListAppointmentsResp, error)
	ListForBusiness(ctx context.Context, s *types.Session, businessID uint64, req *types.ListAppointmentsReq) (*types.ListAppointmentsResp, error)
	Confirm(ctx context.Context, s *types.Session, id uint64) (*types.TransitionResp, error)
	Complete(ctx context.Context, s *types.Session, id uint64) (*types.TransitionResp, error)
	// Cancel routes to the client or business path depending on who the session is.
	Cancel(ctx context.Context, s *types.Session, id uint64) (*types.TransitionResp, error)
	RequestReview(ctx context.Context, s *types.Session, id uint64) (*types.AppointmentResp, error)
}

type AppointmentService struct {
	Appointments AppointmentStore
	Pets         PetStore
	Businesses   BusinessStore
	Services     ServiceStore
	Users        UserStore
	Reward       IRewardService
	Referral     IReferralService
	Parties      *PartyLoader
	Publisher    effect.Publisher
	Idem         IdempotencyLock
	Hasher       *utils.Hasher
	Now          func() time.Time `wire:"-"`
}

func (s *AppointmentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func appointmentResp(a *models.Appointment) types.AppointmentResp {
	return types.AppointmentResp{
		ID:                  a.ID,
		UserID:              a.UserID,
		BusinessID:          a.BusinessID,
		PetID:               a.PetID,
		ServiceID:           a.ServiceID,
		BookingID:           a.BookingID,
		AppointmentDate:     a.AppointmentDate,
		Status:              a.Status,
		IsRecurring:         a.IsRecurring,
		RecurringInterval:   a.RecurringInterval,
		ParentAppointmentID: a.ParentAppointmentID,
		ReviewSent:          a.ReviewSent,
		ReviewSubmitted:     a.ReviewSubmitted,
		Notes:               a.Notes,
		CancelledBy:         a.CancelledBy,
		ConfirmedAt:         a.ConfirmedAt,
		CompletedAt:         a.CompletedAt,
		CancelledAt:         a.CancelledAt,
	}
}

func uniqueIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]bool, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func (s *AppointmentService) publish(ctx context.Context, id uint64, intents []effect.Intent) {
	if len(intents) == 0 {
		return
	}
	if err := s.Publisher.Publish(ctx, intents...); err != nil {
		log.L.Error("publish intents failed",
			zap.Uint64("appointment_id", id),
			zap.Int("intents", len(intents)),
			zap.Error(err),
		)
	}
}

func (s *AppointmentService) Book(ctx context.Context, sess *types.Session, req *types.BookReq, idemKey string) (*types.BookResp, error) {
	if err := appointment.ValidateRecurrence(req.IsRecurring, req.RecurringInterval); err != nil {
		return nil, invalid("El intervalo de recurrencia no es válido para esta cita")
	}
	if !req.AppointmentDate.After(s.now()) {
		return nil, invalid("La fecha de la cita debe ser futura")
	}
	ids := uniqueIDs(req.ServiceIDs)
	if len(ids) == 0 {
		return nil, invalid("Selecciona al menos un servicio")
	}

	if idemKey == "" {
		resp, _, err := s.book(ctx, sess, req, ids)
		return resp, err
	}

	acquired, bookingID, err := s.Idem.Acquire(ctx, bookingScope, sess.UserID, idemKey)
	if err != nil {
		return nil, err
	}
	if !acquired {
		if bookingID == "" {
			return nil, ErrInProgress
		}
		return s.replayBooking(ctx, sess, bookingID)
	}

	resp, bookingID, err := s.book(ctx, sess, req, ids)
	if bookingID == "" {
		if rerr := s.Idem.Release(ctx, bookingScope, sess.UserID, idemKey); rerr != nil {
			log.L.Warn("release booking key failed", zap.String("key", idemKey), zap.Error(rerr))
		}
		return nil, err
	}
	// the booking exists: a retry with the same key replays it and re-applies the grant
	if cerr := s.Idem.Complete(ctx, bookingScope, sess.UserID, idemKey, bookingID); cerr != nil {
		log.L.Warn("complete booking key failed", zap.String("key", idemKey), zap.Error(cerr))
	}
	return resp, err
}

// book returns the booking id as soon as the appointments are stored, even when a later step fails.
func (s *AppointmentService) book(ctx context.Context, sess *types.Session, req *types.BookReq, ids []uint64) (*types.BookResp, string, error) {
	pet, err := s.Pets.FindOwned(ctx, req.PetID, sess.UserID)
	if err != nil {
		return nil, "", notFound(err)
	}
	biz, err := s.Businesses.FindById(ctx, req.BusinessID)
	if err != nil {
		return nil, "", notFound(err)
	}
	services, err := s.Services.FindMany(ctx, biz.ID, ids)
	if err != nil {
		return nil, "", err
	}
	if len(services) != len(ids) {
		return nil, "", invalid("Alguno de los servicios no está disponible en este negocio")
	}
	client, err := s.Users.FindById(ctx, sess.UserID)
	if err != nil {
		return nil, "", notFound(err)
	}

	bookingID := snowflake.GenBookingID()
	items := make([]*models.Appointment, 0, len(services))
	names := make([]string, 0, len(services))
	for _, svc := range services {
		var interval *string
		if req.IsRecurring {
			iv := *req.RecurringInterval
			interval = &iv
		}
		items = append(items, &models.Appointment{
			UserID:            sess.UserID,
			BusinessID:        biz.ID,
			PetID:             pet.ID,
			ServiceID:         svc.ID,
			ClientEmail:       client.Email,
			BookingID:         bookingID,
			AppointmentDate:   req.AppointmentDate.UTC(),
			Status:            string(appointment.Pending),
			IsRecurring:       req.IsRecurring,
			RecurringInterval: interval,
			Notes:             req.Notes,
		})
		names = append(names, svc.Name)
	}
	if err := s.Appointments.CreateBatch(ctx, items); err != nil {
		return nil, "", err
	}

	p := appointment.Parties{
		ClientID:     client.ID,
		ClientName:   client.DisplayName,
		ClientEmail:  client.Email,
		OwnerID:      biz.OwnerID,
		BusinessName: biz.Name,
		PetName:      pet.Name,
		BaseURL:      s.Parties.baseURL(),
		Location:     s.Parties.location(),
	}
	intents, err := appointment.Booked(items, p, names)
	if err != nil {
		log.L.Error("plan booking intents failed", zap.String("booking_id", bookingID), zap.Error(err))
	}
	s.publish(ctx, items[0].ID, intents)

	resp := &types.BookResp{BookingID: bookingID, Appointments: make([]types.AppointmentResp, 0, len(items))}
	for _, a := range items {
		resp.Appointments = append(resp.Appointments, appointmentResp(a))
	}

	res, err := s.grantBooked(ctx, sess.UserID, bookingID, len(items))
	if err != nil {
		return nil, bookingID, err
	}
	resp.PointsEarned = earned(res, loyalty.PointsFor(loyalty.AppointmentBooked))
	return resp, bookingID, nil
}

// grantBooked is keyed by the booking id: one grant per booking call, whatever the number of services.
func (s *AppointmentService) grantBooked(ctx context.Context, userID uint64, bookingID string, n int) (*dao.GrantResult, error) {
	return s.Reward.Grant(ctx, userID, loyalty.AppointmentBooked,
		grantKey(loyalty.AppointmentBooked, bookingID), 0,
		map[string]any{"booking_id": bookingID, "appointments": n})
}

func (s *AppointmentService) replayBooking(ctx context.Context, sess *types.Session, bookingID string) (*types.BookResp, error) {
	items, err := s.Appointments.ListByBooking(ctx, sess.UserID, bookingID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}
	resp := &types.BookResp{BookingID: bookingID, Appointments: make([]types.AppointmentResp, 0, len(items))}
	for _, a := range items {
		resp.Appointments = append(resp.Appointments, appointmentResp(a))
	}
	res, err := s.grantBooked(ctx, sess.UserID, bookingID, len(items))
	if err != nil {
		return nil, err
	}
	resp.PointsEarned = earned(res, loyalty.PointsFor(loyalty.AppointmentBooked))
	return resp, nil
}

func (s *AppointmentService) Get(ctx context.Context, sess *types.Session, id uint64) (*types.AppointmentResp, error) {
	a, err := s.Appointments.FindById(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if a.UserID != sess.UserID && !sess.Is(models.RoleAdmin) {
		biz, err := s.Businesses.FindById(ctx, a.BusinessID)
		if err != nil {
			return nil, notFound(err)
		}
		if biz.OwnerID != sess.UserID {
			return nil, ErrForbidden
		}
	}
	resp := appointmentResp(a)
	return &resp, nil
}

func (s *AppointmentService) List(ctx context.Context, sess *types.Session, req *types.ListAppointmentsReq) (*types.ListAppointmentsResp, error) {
	return s.list(ctx, req, func(limit int) ([]*models.Appointment, error) {
		return s.Appointments.List(ctx, listFilter(sess.UserID, 0, req, limit))
	})
}

func (s *AppointmentService) ListForBusiness(ctx context.Context, sess *types.Session, businessID uint64, req *types.ListAppointmentsReq) (*types.ListAppointmentsResp, error) {
	biz, err := s.Businesses.FindById(ctx, businessID)
	if err != nil {
		return nil, notFound(err)
	}
	if biz.OwnerID != sess.UserID && !sess.Is(models.RoleAdmin) {
		return nil, ErrForbidden
	}
	return s.list(ctx, req, func(limit int) ([]*models.Appointment, error) {
		return s.Appointments.List(ctx, listFilter(0, businessID, req, limit))
	})
}

func listFilter(userID, businessID uint64, req *types.ListAppointmentsReq, limit int) dao.ListFilter {
	return dao.ListFilter{
		UserID:     userID,
		BusinessID: businessID,
		Status:     req.Status,
		Cursor:     req.Cursor,
		Limit:      limit,
	}
}

func (s *AppointmentService) list(ctx context.Context, req *types.ListAppointmentsReq, fetch func(limit int) ([]*models.Appointment, error)) (*types.ListAppointmentsResp, error) {
	limit := utils.ClampLimit(req.Limit, 20, 100)
	items, err := fetch(limit + 1)
	if err != nil {
		return nil, err
	}
	resp := &types.ListAppointmentsResp{Appointments: make([]types.AppointmentResp, 0, len(items))}
	if len(items) > limit {
		resp.HasMore = true
		items = items[:limit]
		resp.NextCursor = items[len(items)-1].ID
	}
	for _, a := range items {
		resp.Appointments = append(resp.Appointments, appointmentResp(a))
	}
	return resp, nil
}

// loadForOwner loads an appointment the session manages as business owner.
func (s *AppointmentService) loadForOwner(ctx context.Context, sess *types.Session, id uint64) (*models.Appointment, appointment.Parties, error) {
	a, err := s.Appointments.FindById(ctx, id)
	if err != nil {
		return nil, appointment.Parties{}, notFound(err)
	}
	p, biz, err := s.Parties.Load(ctx, a)
	if err != nil {
		return nil, appointment.Parties{}, err
	}
	if biz.OwnerID != sess.UserID && !sess.Is(models.RoleAdmin) {
		return nil, appointment.Parties{}, ErrForbidden
	}
	return a, p, nil
}

// Confirm moves pending -> confirmed. For a recurring appointment the successor
// is created in the same transaction; confirming again only ensures it exists.
// Successor dates are stepped in the configured business timezone.
func (s *AppointmentService) Confirm(ctx context.Context, sess *types.Session, id uint64) (*types.TransitionResp, error) {
	a, p, err := s.loadForOwner(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	out, err := appointment.Confirm(a, p)
	if err != nil {
		transitionsTotal.WithLabelValues(string(appointment.Confirmed), "rejected").Inc()
		return nil, err
	}

	now := s.now()
	var successor *models.Appointment
	if a.IsRecurring {
		if successor, err = appointment.NewSuccessor(a, p.Location, now); err != nil {
			return nil, err
		}
	}
	if out.Replay && successor == nil {
		transitionsTotal.WithLabelValues(string(appointment.Confirmed), "replay").Inc()
		return &types.TransitionResp{Appointment: appointmentResp(a), Replayed: true}, nil
	}

	res, err := s.Appointments.Confirm(ctx, a.ID, now, successor)
	if err != nil {
		return nil, err
	}
	if !res.Changed && res.Current != appointment.Confirmed {
		transitionsTotal.WithLabelValues(string(appointment.Confirmed), "rejected").Inc()
		return nil, fmt.Errorf("%w: %s -> %s", appointment.ErrInvalidTransition, res.Current, appointment.Confirmed)
	}

	var intents []effect.Intent
	if res.Changed {
		a.ConfirmedAt = &now
		intents = append(intents, out.Intents...)
		transitionsTotal.WithLabelValues(string(appointment.Confirmed), "changed").Inc()
	} else {
		transitionsTotal.WithLabelValues(string(appointment.Confirmed), "replay").Inc()
	}
	a.Status = string(res.Current)

	// Continuing the chain from an already confirmed occurrence is new work.
	resp := &types.TransitionResp{Replayed: !res.Changed && !res.Created}
	if successor != nil {
		if res.Created {
			more, err := appointment.SuccessorIntents(a, successor, p)
			if err != nil {
				log.L.Error("plan successor intents failed", zap.Uint64("appointment_id", a.ID), zap.Error(err))
			}
			intents = append(intents, more...)
		} else if existing, err := s.Appointments.FindSuccessor(ctx, a.ID); err == nil {
			successor = existing
		} else {
			log.L.Warn("successor lookup failed", zap.Uint64("appointment_id", a.ID), zap.Error(err))
			successor = nil
		}
		if successor != nil {
			sr := appointmentResp(successor)
			resp.Successor = &sr
		}
	}
	s.publish(ctx, a.ID, intents)

	resp.Appointment = appointmentResp(a)
	return resp, nil
}

// Complete moves confirmed -> completed and applies the completion grants.
// Replays re-apply only the idempotent grants.
func (s *AppointmentService) Complete(ctx context.Context, sess *types.Session, id uint64) (*types.TransitionResp, error) {
	a, p, err := s.loadForOwner(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	out, err := appointment.Complete(a, p)
	if err != nil {
		transitionsTotal.WithLabelValues(string(appointment.Completed), "rejected").Inc()
		return nil, err
	}

	changed := false
	if !out.Replay {
		now := s.now()
		if changed, a, err = s.transition(ctx, a, appointment.Completed, map[string]any{"completed_at": now}); err != nil {
			return nil, err
		}
		if changed {
			a.CompletedAt = &now
			s.publish(ctx, a.ID, out.Intents)
		}
	}

	points, err := s.completionGrants(ctx, a)
	if err != nil {
		return nil, err
	}
	return &types.TransitionResp{Appointment: appointmentResp(a), PointsEarned: points, Replayed: !changed}, nil
}

// transition applies a compare-and-set status change. When the row moved
// concurrently it reports the current row, failing unless it already holds `to`.
func (s *AppointmentService) transition(ctx context.Context, a *models.Appointment, to appointment.Status, fields map[string]any) (bool, *models.Appointment, error) {
	ok, err := s.Appointments.CompareAndSetStatus(ctx, a.ID, to, appointment.Sources(to), fields)
	if err != nil {
		return false, nil, err
	}
	if ok {
		transitionsTotal.WithLabelValues(string(to), "changed").Inc()
		a.Status = string(to)
		return true, a, nil
	}

	cur, err := s.Appointments.FindById(ctx, a.ID)
	if err != nil {
		return false, nil, notFound(err)
	}
	if cur.Status != string(to) {
		transitionsTotal.WithLabelValues(string(to), "rejected").Inc()
		return false, nil, fmt.Errorf("%w: %s -> %s", appointment.ErrInvalidTransition, cur.Status, to)
	}
	transitionsTotal.WithLabelValues(string(to), "replay").Inc()
	return false, cur, nil
}

func (s *AppointmentService) completionGrants(ctx context.Context, a *models.Appointment) (int64, error) {
	res, err := s.Reward.Grant(ctx, a.UserID, loyalty.AppointmentCompleted,
		grantKey(loyalty.AppointmentCompleted, a.ID), 0, map[string]any{"appointment_id": a.ID})
	if err != nil {
		return 0, err
	}
	total := earned(res, loyalty.PointsFor(loyalty.AppointmentCompleted))

	count, err := s.Appointments.CountCompletedByUser(ctx, a.UserID)
	if err != nil {
		return total, err
	}
	if bonus, ok := loyalty.MilestoneBonus(count); ok {
		res, err := s.Reward.Grant(ctx, a.UserID, loyalty.AppointmentMilestone,
			grantKey(loyalty.AppointmentMilestone, a.UserID, count), bonus,
			map[string]any{"completed": count, "appointment_id": a.ID})
		if err != nil {
			return total, err
		}
		total += earned(res, bonus)
	}
	if count == 1 {
		if err := s.Referral.OnFirstAppointment(ctx, a.UserID); err != nil {
			log.L.Error("user referral reward failed", zap.Uint64("user_id", a.UserID), zap.Error(err))
		}
	}
	return total, nil
}

func (s *AppointmentService) Cancel(ctx context.Context, sess *types.Session, id uint64) (*types.TransitionResp, error) {
	a, err := s.Appointments.FindById(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	p, biz, err := s.Parties.Load(ctx, a)
	if err != nil {
		return nil, err
	}

	var actor appointment.Actor
	switch {
	case a.UserID == sess.UserID:
		actor = appointment.ActorClient
	case biz.OwnerID == sess.UserID || sess.Is(models.RoleAdmin):
		actor = appointment.ActorBusiness
	default:
		return nil, ErrForbidden
	}

	out, err := appointment.Cancel(a, actor, p)
	if err != nil {
		transitionsTotal.WithLabelValues(string(appointment.Cancelled), "rejected").Inc()
		return nil, err
	}

	changed := false
	if !out.Replay {
		now := s.now()
		if changed, a, err = s.transition(ctx, a, appointment.Cancelled, map[string]any{
			"cancelled_at": now,
			"cancelled_by": string(actor),
		}); err != nil {
			return nil, err
		}
		if changed {
			a.CancelledAt = &now
			a.CancelledBy = string(actor)
			s.publish(ctx, a.ID, out.Intents)
		}
	}

	resp := &types.TransitionResp{Replayed: !changed}
	if a.CancelledBy == string(appointment.ActorClient) && a.CancelledAt != nil {
		if pts := loyalty.CancellationPoints(a.AppointmentDate, *a.CancelledAt); pts > 0 {
			res, err := s.Reward.Grant(ctx, a.UserID, loyalty.EarlyCancellation,
				grantKey(loyalty.EarlyCancellation, a.ID), 0, map[string]any{"appointment_id": a.ID})
			if err != nil {
				return nil, err
			}
			resp.PointsEarned = earned(res, pts)
		}
	}
	resp.Appointment = appointmentResp(a)
	return resp, nil
}

func (s *AppointmentService) reviewURL(p appointment.Parties, id uint64) string {
	return p.BaseURL + "/review/" + s.Hasher.Encode(id)
}

// RequestReview sends the review link once for a completed appointment.
func (s *AppointmentService) RequestReview(ctx context.Context, sess *types.Session, id uint64) (*types.AppointmentResp, error) {
	a, p, err := s.loadForOwner(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	intents, err := appointment.RequestReview(a, p, s.reviewURL(p, a.ID))
	if err != nil {
		return nil, err
	}
	ok, err := s.Appointments.MarkReviewSent(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: review already requested", appointment.ErrInvalidTransition)
	}
	a.ReviewSent = true
	s.publish(ctx, a.ID, intents)

	resp := appointmentResp(a)
	return &resp, nil
}
