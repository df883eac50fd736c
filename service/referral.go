package service

import (
	"Petly/config"
	"Petly/internal/effect"
	"Petly/internal/loyalty"
	"Petly/models"
	"Petly/pkg/log"
	"Petly/pkg/snowflake"
	"Petly/pkg/utils"
	"Petly/types"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ IReferralService = (*ReferralService)(nil)

type IReferralService interface {
	Invite(ctx context.Context, s *types.Session, req *types.InviteReq) (*types.ReferralResp, error)
	List(ctx context.Context, s *types.Session) ([]types.ReferralResp, error)
	// AttachOnRegister links a pending invitation to a new account, by code or by e-mail.
	AttachOnRegister(ctx context.Context, user *models.Users, code string) error
	// OnFirstAppointment rewards the inviter of a user whose first appointment was completed.
	OnFirstAppointment(ctx context.Context, userID uint64) error
	// OnBusinessCompleted rewards the inviter of a business owner whose profile became complete.
	OnBusinessCompleted(ctx context.Context, ownerID uint64) error
}

type ReferralService struct {
	Config    *config.Config
	Referrals ReferralStore
	Users     UserStore
	Reward    IRewardService
	Hasher    *utils.Hasher
	Publisher effect.Publisher
	Now       func() time.Time `wire:"-"`
}

func (s *ReferralService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func referralResp(r *models.ReferralInvitation) types.ReferralResp {
	return types.ReferralResp{
		ID:           r.ID,
		InviteeEmail: r.InviteeEmail,
		Kind:         r.Kind,
		Code:         r.Code,
		Status:       r.Status,
		RewardedAt:   r.RewardedAt,
		CreatedAt:    r.CreatedAt,
	}
}

func (s *ReferralService) Invite(ctx context.Context, sess *types.Session, req *types.InviteReq) (*types.ReferralResp, error) {
	email := utils.NormalizeEmail(req.Email)
	if email == utils.NormalizeEmail(sess.Email) {
		return nil, invalid("No puedes invitarte a ti mismo")
	}
	if s.Users.IsEmailExist(ctx, email) {
		return nil, invalid("Este correo ya tiene una cuenta en Petly")
	}

	inv := &models.ReferralInvitation{
		InviterID:    sess.UserID,
		InviteeEmail: email,
		Kind:         req.Kind,
		Code:         s.Hasher.Encode(sess.UserID, uint64(snowflake.GenID())),
		Status:       models.ReferralPending,
	}
	if err := s.Referrals.Create(ctx, inv); err != nil {
		return nil, err
	}

	inviter := sess.Email
	if u, err := s.Users.FindById(ctx, sess.UserID); err == nil && u.DisplayName != "" {
		inviter = u.DisplayName
	}
	line := fmt.Sprintf("%s te invita a unirte a Petly para cuidar de tu mascota.", inviter)
	if req.Kind == models.ReferralKindBusiness {
		line = fmt.Sprintf("%s te invita a registrar tu negocio en Petly y recibir reservas online.", inviter)
	}
	mail, err := effect.MailIntent(fmt.Sprintf("referral:%d:email", inv.ID), email, effect.Mail{
		Title:       "Te han invitado a Petly",
		Greeting:    "Hola,",
		Lines:       []string{line, "Regístrate con este enlace para aceptar la invitación."},
		ActionURL:   strings.TrimRight(s.Config.App.BaseURL, "/") + "/register?ref=" + inv.Code,
		ActionLabel: "Crear mi cuenta",
	})
	if err != nil {
		return nil, err
	}
	if err := s.Publisher.Publish(ctx, mail); err != nil {
		log.L.Error("referral invitation publish failed", zap.Uint64("referral_id", inv.ID), zap.Error(err))
	}

	resp := referralResp(inv)
	return &resp, nil
}

func (s *ReferralService) List(ctx context.Context, sess *types.Session) ([]types.ReferralResp, error) {
	items, err := s.Referrals.ListByInviter(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	out := make([]types.ReferralResp, 0, len(items))
	for _, r := range items {
		out = append(out, referralResp(r))
	}
	return out, nil
}

func (s *ReferralService) AttachOnRegister(ctx context.Context, user *models.Users, code string) error {
	var (
		inv *models.ReferralInvitation
		err error
	)
	if code != "" {
		inv, err = s.Referrals.FindPendingByCode(ctx, strings.TrimSpace(code))
	} else {
		inv, err = s.Referrals.FindPendingByEmail(ctx, user.Email)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if inv.InviterID == user.ID || !kindMatches(inv.Kind, user.Role) {
		return nil
	}
	_, err = s.Referrals.Attach(ctx, inv.ID, user.ID)
	return err
}

func kindMatches(kind, role string) bool {
	if kind == models.ReferralKindBusiness {
		return role == models.RoleBusiness
	}
	return role == models.RoleUser
}

func (s *ReferralService) OnFirstAppointment(ctx context.Context, userID uint64) error {
	return s.reward(ctx, userID, models.ReferralKindUser, loyalty.ReferralUser)
}

func (s *ReferralService) OnBusinessCompleted(ctx context.Context, ownerID uint64) error {
	return s.reward(ctx, ownerID, models.ReferralKindBusiness, loyalty.ReferralBusiness)
}

func (s *ReferralService) reward(ctx context.Context, inviteeID uint64, kind string, action loyalty.Action) error {
	inv, err := s.Referrals.FindRegistered(ctx, inviteeID, kind)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	res, err := s.Reward.Grant(ctx, inv.InviterID, action, grantKey(action, inv.ID), 0,
		map[string]any{"referral_id": inv.ID, "invitee_id": inviteeID})
	if err != nil {
		return err
	}
	if _, err := s.Referrals.MarkRewarded(ctx, inv.ID, s.now()); err != nil {
		return err
	}
	if res.Duplicate {
		return nil
	}

	notice := effect.NewNotification(fmt.Sprintf("referral:%d:rewarded", inv.ID), effect.Notification{
		UserID:  inv.InviterID,
		Type:    "referral_rewarded",
		Title:   "¡Tu invitación dio frutos!",
		Message: fmt.Sprintf("%s se unió a Petly. Has ganado %d puntos.", inv.InviteeEmail, loyalty.PointsFor(action)),
		Link:    "/rewards",
	})
	if err := s.Publisher.Publish(ctx, notice); err != nil {
		log.L.Error("referral reward publish failed", zap.Uint64("referral_id", inv.ID), zap.Error(err))
	}
	return nil
}
