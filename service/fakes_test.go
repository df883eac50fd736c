package service

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"Petly/config"
	"Petly/dao"
	"Petly/internal/appointment"
	"Petly/internal/effect/effecttest"
	"Petly/internal/loyalty"
	"Petly/models"
	"Petly/pkg/utils"
	"Petly/types"

	"gorm.io/gorm"
)

// in-memory stand-ins for the dao layer

type fakeUsers struct {
	mu        sync.Mutex
	rows      map[uint64]*models.Users
	next      uint64
	updateErr error
}

func newFakeUsers(users ...*models.Users) *fakeUsers {
	f := &fakeUsers{rows: map[uint64]*models.Users{}, next: 100}
	for _, u := range users {
		f.rows[u.ID] = u
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, u *models.Users) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.Email == u.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	f.next++
	u.ID = f.next
	cp := *u
	f.rows[u.ID] = &cp
	return nil
}

func (f *fakeUsers) FindById(_ context.Context, id uint64) (*models.Users, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.Users, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.rows {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) IsEmailExist(ctx context.Context, email string) bool {
	_, err := f.FindByEmail(ctx, email)
	return err == nil
}

func (f *fakeUsers) Update(_ context.Context, id uint64, updates map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	u := f.rows[id]
	for k, v := range updates {
		switch k {
		case "display_name":
			u.DisplayName = v.(string)
		case "phone":
			u.Phone = v.(string)
		case "avatar_url":
			u.AvatarURL = v.(string)
		}
	}
	return nil
}

func (f *fakeUsers) ListPage(_ context.Context, role string, cursor uint64, limit int) ([]*models.Users, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Users
	for _, u := range f.rows {
		if (role == "" || u.Role == role) && (cursor == 0 || u.ID < cursor) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeLedger applies grants and spends to fakeUsers with the same rules as dao.Ledger.
type fakeLedger struct {
	mu          sync.Mutex
	users       *fakeUsers
	keys        map[string]bool
	grants      []dao.GrantCmd
	redemptions map[string]*models.RewardRedemption
	err         error
}

func newFakeLedger(users *fakeUsers) *fakeLedger {
	return &fakeLedger{users: users, keys: map[string]bool{}, redemptions: map[string]*models.RewardRedemption{}}
}

func (l *fakeLedger) Grant(_ context.Context, cmd dao.GrantCmd) (*dao.GrantResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	l.users.mu.Lock()
	defer l.users.mu.Unlock()
	u, ok := l.users.rows[cmd.UserID]
	if !ok {
		return nil, dao.ErrUserNotFound
	}
	acc := loyalty.AccountOf(u.RewardPoints, u.TotalLifetimePoints, u.RewardTier, u.LoyaltyStars)
	if l.keys[cmd.IdempotencyKey] {
		return &dao.GrantResult{Account: acc, Duplicate: true}, nil
	}
	acc = acc.Credit(cmd.Points, cmd.Stars)
	u.RewardPoints, u.TotalLifetimePoints, u.RewardTier, u.LoyaltyStars = acc.Points, acc.Lifetime, string(acc.Tier), acc.Stars
	l.keys[cmd.IdempotencyKey] = true
	l.grants = append(l.grants, cmd)
	return &dao.GrantResult{Account: acc, RecordID: uint64(len(l.grants))}, nil
}

func (l *fakeLedger) Redeem(_ context.Context, cmd dao.RedeemCmd) (*dao.RedeemResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.users.mu.Lock()
	defer l.users.mu.Unlock()
	u, ok := l.users.rows[cmd.UserID]
	if !ok {
		return nil, dao.ErrUserNotFound
	}
	acc := loyalty.AccountOf(u.RewardPoints, u.TotalLifetimePoints, u.RewardTier, u.LoyaltyStars)
	if r, ok := l.redemptions[cmd.IdempotencyKey]; ok {
		return &dao.RedeemResult{Account: acc, Redemption: r, Duplicate: true}, nil
	}
	if cmd.MinTier != "" && !loyalty.TierFor(acc.Lifetime).AtLeast(cmd.MinTier) {
		return nil, loyalty.ErrTierTooLow
	}
	acc, err := acc.Spend(cmd.Cost)
	if err != nil {
		return nil, err
	}
	u.RewardPoints = acc.Points
	r := &models.RewardRedemption{
		ID:                   uint64(len(l.redemptions) + 1),
		UserID:               cmd.UserID,
		PlatformRewardID:     cmd.PlatformRewardID,
		BusinessRedeemableID: cmd.BusinessRedeemableID,
		BusinessID:           cmd.BusinessID,
		Title:                cmd.Title,
		PointsSpent:          cmd.Cost,
		Status:               models.RedemptionActive,
		IdempotencyKey:       cmd.IdempotencyKey,
	}
	if cmd.ValidDays > 0 {
		exp := cmd.Now.AddDate(0, 0, cmd.ValidDays)
		r.ExpiresAt = &exp
	}
	l.redemptions[cmd.IdempotencyKey] = r
	return &dao.RedeemResult{Account: acc, Redemption: r}, nil
}

func (l *fakeLedger) granted(action loyalty.Action) []dao.GrantCmd {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []dao.GrantCmd
	for _, g := range l.grants {
		if g.Action == action {
			out = append(out, g)
		}
	}
	return out
}

type fakePets struct {
	rows map[uint64]*models.Pet
	next uint64
}

func newFakePets(pets ...*models.Pet) *fakePets {
	f := &fakePets{rows: map[uint64]*models.Pet{}, next: 500}
	for _, p := range pets {
		f.rows[p.ID] = p
	}
	return f
}

func (f *fakePets) Create(_ context.Context, p *models.Pet) error {
	f.next++
	p.ID = f.next
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakePets) FindById(_ context.Context, id uint64) (*models.Pet, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePets) FindOwned(ctx context.Context, id, ownerID uint64) (*models.Pet, error) {
	p, err := f.FindById(ctx, id)
	if err != nil || p.OwnerID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakePets) ListByOwner(_ context.Context, ownerID uint64) ([]*models.Pet, error) {
	var out []*models.Pet
	for _, p := range f.rows {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePets) Update(_ context.Context, id uint64, updates map[string]any) error {
	p := f.rows[id]
	if v, ok := updates["name"]; ok {
		p.Name = v.(string)
	}
	if v, ok := updates["breed"]; ok {
		p.Breed = v.(string)
	}
	return nil
}

func (f *fakePets) SetPhoto(_ context.Context, id uint64, url string) (bool, error) {
	p := f.rows[id]
	first := p.PhotoURL == ""
	p.PhotoURL = url
	return first, nil
}

func (f *fakePets) Delete(_ context.Context, id, ownerID uint64) (bool, error) {
	p, ok := f.rows[id]
	if !ok || p.OwnerID != ownerID {
		return false, nil
	}
	delete(f.rows, id)
	return true, nil
}

type fakeBusinesses struct {
	rows map[uint64]*models.Business
	next uint64
}

func newFakeBusinesses(items ...*models.Business) *fakeBusinesses {
	f := &fakeBusinesses{rows: map[uint64]*models.Business{}, next: 900}
	for _, b := range items {
		f.rows[b.ID] = b
	}
	return f
}

func (f *fakeBusinesses) Create(_ context.Context, b *models.Business) error {
	f.next++
	b.ID = f.next
	cp := *b
	f.rows[b.ID] = &cp
	return nil
}

func (f *fakeBusinesses) FindById(_ context.Context, id uint64) (*models.Business, error) {
	b, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBusinesses) ListPage(_ context.Context, city string, cursor uint64, limit int) ([]*models.Business, error) {
	var out []*models.Business
	for _, b := range f.rows {
		if city == "" || b.City == city {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBusinesses) Update(_ context.Context, id uint64, updates map[string]any) error {
	b := f.rows[id]
	for k, v := range updates {
		switch k {
		case "name":
			b.Name = v.(string)
		case "phone":
			b.Phone = v.(string)
		case "address":
			b.Address = v.(string)
		case "city":
			b.City = v.(string)
		}
	}
	return nil
}

func (f *fakeBusinesses) MarkCompleted(_ context.Context, id uint64, at time.Time) (bool, error) {
	b := f.rows[id]
	if b.CompletedAt != nil {
		return false, nil
	}
	b.CompletedAt = &at
	return true, nil
}

type fakeServices struct {
	rows map[uint64]*models.BusinessService
}

func newFakeServices(items ...*models.BusinessService) *fakeServices {
	f := &fakeServices{rows: map[uint64]*models.BusinessService{}}
	for _, s := range items {
		f.rows[s.ID] = s
	}
	return f
}

func (f *fakeServices) Create(_ context.Context, s *models.BusinessService) error {
	s.ID = uint64(len(f.rows) + 700)
	f.rows[s.ID] = s
	return nil
}

func (f *fakeServices) FindById(_ context.Context, id uint64) (*models.BusinessService, error) {
	s, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (f *fakeServices) ListByBusiness(_ context.Context, businessID uint64) ([]*models.BusinessService, error) {
	var out []*models.BusinessService
	for _, s := range f.rows {
		if s.BusinessID == businessID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeServices) FindMany(_ context.Context, businessID uint64, ids []uint64) ([]*models.BusinessService, error) {
	var out []*models.BusinessService
	for _, id := range ids {
		if s, ok := f.rows[id]; ok && s.BusinessID == businessID && s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}

// fakeAppointments mimics the compare-and-set semantics of dao.Appointments.
type fakeAppointments struct {
	mu      sync.Mutex
	rows    map[uint64]*models.Appointment
	reviews []*models.Review
	next    uint64
}

func newFakeAppointments(items ...*models.Appointment) *fakeAppointments {
	f := &fakeAppointments{rows: map[uint64]*models.Appointment{}, next: 1000}
	for _, a := range items {
		f.rows[a.ID] = a
	}
	return f
}

func (f *fakeAppointments) get(id uint64) *models.Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *f.rows[id]
	return &cp
}

func (f *fakeAppointments) all() []*models.Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Appointment, 0, len(f.rows))
	for _, a := range f.rows {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeAppointments) FindById(_ context.Context, id uint64) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAppointments) CreateBatch(_ context.Context, items []*models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range items {
		f.next++
		a.ID = f.next
		cp := *a
		f.rows[a.ID] = &cp
	}
	return nil
}

func (f *fakeAppointments) ListByBooking(_ context.Context, userID uint64, bookingID string) ([]*models.Appointment, error) {
	var out []*models.Appointment
	for _, a := range f.all() {
		if a.UserID == userID && a.BookingID == bookingID && a.ParentAppointmentID == nil {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointments) CompareAndSetStatus(_ context.Context, id uint64, to appointment.Status, from []string, fields map[string]any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := f.rows[id]
	allowed := false
	for _, s := range from {
		if a.Status == s {
			allowed = true
		}
	}
	if !allowed {
		return false, nil
	}
	a.Status = string(to)
	for k, v := range fields {
		switch k {
		case "completed_at":
			t := v.(time.Time)
			a.CompletedAt = &t
		case "cancelled_at":
			t := v.(time.Time)
			a.CancelledAt = &t
		case "cancelled_by":
			a.CancelledBy = v.(string)
		}
	}
	return true, nil
}

func (f *fakeAppointments) Confirm(_ context.Context, id uint64, at time.Time, successor *models.Appointment) (*dao.ConfirmResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := f.rows[id]
	out := &dao.ConfirmResult{Current: appointment.Status(a.Status)}
	if a.Status == string(appointment.Pending) {
		a.Status = string(appointment.Confirmed)
		a.ConfirmedAt = &at
		out.Changed = true
		out.Current = appointment.Confirmed
	}
	if out.Current != appointment.Confirmed || successor == nil {
		return out, nil
	}
	for _, r := range f.rows {
		if r.ParentAppointmentID != nil && *r.ParentAppointmentID == *successor.ParentAppointmentID {
			return out, nil
		}
	}
	f.next++
	successor.ID = f.next
	cp := *successor
	f.rows[successor.ID] = &cp
	out.Created = true
	return out, nil
}

func (f *fakeAppointments) FindSuccessor(_ context.Context, parentID uint64) (*models.Appointment, error) {
	for _, a := range f.all() {
		if a.ParentAppointmentID != nil && *a.ParentAppointmentID == parentID {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAppointments) CountCompletedByUser(_ context.Context, userID uint64) (int64, error) {
	var n int64
	for _, a := range f.all() {
		if a.UserID == userID && a.Status == string(appointment.Completed) {
			n++
		}
	}
	return n, nil
}

func (f *fakeAppointments) List(_ context.Context, flt dao.ListFilter) ([]*models.Appointment, error) {
	var out []*models.Appointment
	all := f.all()
	for i := len(all) - 1; i >= 0; i-- {
		a := all[i]
		if flt.UserID > 0 && a.UserID != flt.UserID {
			continue
		}
		if flt.BusinessID > 0 && a.BusinessID != flt.BusinessID {
			continue
		}
		if flt.Status != "" && a.Status != flt.Status {
			continue
		}
		if flt.Cursor > 0 && a.ID >= flt.Cursor {
			continue
		}
		out = append(out, a)
		if len(out) == flt.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeAppointments) ListDueReminders(_ context.Context, w appointment.ReminderWindow, now time.Time, limit int) ([]*models.Appointment, error) {
	var out []*models.Appointment
	for _, a := range f.all() {
		sent := a.Reminder24hSent
		if w == appointment.Reminder1h {
			sent = a.Reminder1hSent
		}
		if a.Status == string(appointment.Confirmed) && !sent &&
			a.AppointmentDate.After(now) && !a.AppointmentDate.After(now.Add(w.Lead())) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointments) flag(id uint64, w appointment.ReminderWindow) *bool {
	a := f.rows[id]
	if w == appointment.Reminder1h {
		return &a.Reminder1hSent
	}
	return &a.Reminder24hSent
}

func (f *fakeAppointments) MarkReminderSent(_ context.Context, id uint64, w appointment.ReminderWindow) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.flag(id, w)
	if *p {
		return false, nil
	}
	*p = true
	return true, nil
}

func (f *fakeAppointments) UnmarkReminderSent(_ context.Context, id uint64, w appointment.ReminderWindow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	*f.flag(id, w) = false
	return nil
}

func (f *fakeAppointments) MarkReviewSent(_ context.Context, id uint64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := f.rows[id]
	if a.Status != string(appointment.Completed) || a.ReviewSent || a.ReviewSubmitted {
		return false, nil
	}
	a.ReviewSent = true
	return true, nil
}

func (f *fakeAppointments) SubmitReview(_ context.Context, r *models.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := f.rows[r.AppointmentID]
	if a.Status != string(appointment.Completed) || a.ReviewSubmitted {
		return dao.ErrAlreadyReviewed
	}
	a.ReviewSubmitted = true
	r.ID = uint64(len(f.reviews) + 1)
	f.reviews = append(f.reviews, r)
	return nil
}

type fakeIdem struct {
	mu   sync.Mutex
	keys map[string]string
}

func (f *fakeIdem) Acquire(_ context.Context, scope string, uid uint64, key string) (bool, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.keys == nil {
		f.keys = map[string]string{}
	}
	name := scope + ":" + key
	if v, ok := f.keys[name]; ok {
		return false, v, nil
	}
	f.keys[name] = ""
	return true, "", nil
}

func (f *fakeIdem) Complete(_ context.Context, scope string, uid uint64, key, result string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys[scope+":"+key] = result
	return nil
}

func (f *fakeIdem) Release(_ context.Context, scope string, uid uint64, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.keys, scope+":"+key)
	return nil
}

type stubReferral struct {
	mu        sync.Mutex
	firstAppt []uint64
	bizDone   []uint64
}

func (s *stubReferral) Invite(context.Context, *types.Session, *types.InviteReq) (*types.ReferralResp, error) {
	return nil, nil
}

func (s *stubReferral) List(context.Context, *types.Session) ([]types.ReferralResp, error) {
	return nil, nil
}

func (s *stubReferral) AttachOnRegister(context.Context, *models.Users, string) error {
	return nil
}

func (s *stubReferral) OnFirstAppointment(_ context.Context, userID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.firstAppt = append(s.firstAppt, userID)
	return nil
}

func (s *stubReferral) OnBusinessCompleted(_ context.Context, ownerID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bizDone = append(s.bizDone, ownerID)
	return nil
}

type memBucket struct {
	keys []string
}

func (b *memBucket) Put(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	_, _ = io.Copy(io.Discard, body)
	b.keys = append(b.keys, key)
	return "https://cdn.petly.test/" + key, nil
}

// fixture wires the services over one set of fakes.
type fixture struct {
	now          time.Time
	users        *fakeUsers
	ledger       *fakeLedger
	pets         *fakePets
	businesses   *fakeBusinesses
	services     *fakeServices
	appointments *fakeAppointments
	referral     *stubReferral
	recorder     *effecttest.Recorder
	idem         *fakeIdem
	hasher       *utils.Hasher

	reward *RewardService
	appt   *AppointmentService
}

const (
	clientID   uint64 = 1
	ownerID    uint64 = 2
	businessID uint64 = 10
	petID      uint64 = 20
	bathID     uint64 = 30
	cutID      uint64 = 31
)

func newFixture() *fixture {
	f := &fixture{
		now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		users: newFakeUsers(
			&models.Users{ID: clientID, Email: "ana@petly.dev", Role: models.RoleUser, DisplayName: "Ana", RewardTier: "bronze"},
			&models.Users{ID: ownerID, Email: "owner@petly.dev", Role: models.RoleBusiness, DisplayName: "Paws", RewardTier: "bronze"},
		),
		pets:       newFakePets(&models.Pet{ID: petID, OwnerID: clientID, Name: "Luna"}),
		businesses: newFakeBusinesses(&models.Business{ID: businessID, OwnerID: ownerID, Name: "Paws Spa", Phone: "600", Address: "Calle 1"}),
		services: newFakeServices(
			&models.BusinessService{ID: bathID, BusinessID: businessID, Name: "Baño", Active: true},
			&models.BusinessService{ID: cutID, BusinessID: businessID, Name: "Corte", Active: true},
		),
		appointments: newFakeAppointments(),
		referral:     &stubReferral{},
		recorder:     &effecttest.Recorder{},
		idem:         &fakeIdem{},
	}
	f.ledger = newFakeLedger(f.users)
	hasher, err := utils.NewHasher("test-salt", 12)
	if err != nil {
		panic(err)
	}
	f.hasher = hasher

	clock := func() time.Time { return f.now }
	f.reward = &RewardService{Ledger: f.ledger, Users: f.users}
	parties := &PartyLoader{
		Config:     &config.Config{App: &config.App{BaseURL: "https://petly.test"}},
		Users:      f.users,
		Businesses: f.businesses,
		Pets:       f.pets,
		Services:   f.services,
	}
	f.appt = &AppointmentService{
		Appointments: f.appointments,
		Pets:         f.pets,
		Businesses:   f.businesses,
		Services:     f.services,
		Users:        f.users,
		Reward:       f.reward,
		Referral:     f.referral,
		Parties:      parties,
		Publisher:    f.recorder,
		Idem:         f.idem,
		Hasher:       hasher,
		Now:          clock,
	}
	return f
}

func (f *fixture) parties() *PartyLoader {
	return f.appt.Parties
}

func clientSession() *types.Session {
	return &types.Session{UserID: clientID, Email: "ana@petly.dev", Role: models.RoleUser}
}

func ownerSession() *types.Session {
	return &types.Session{UserID: ownerID, Email: "owner@petly.dev", Role: models.RoleBusiness}
}

func strPtr(s string) *string {
	return &s
}
