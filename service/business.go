package service

import (
	"Petly/models"
	"Petly/pkg/log"
	"Petly/pkg/utils"
	"Petly/types"
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

var _ IBusinessService = (*BusinessService)(nil)

type IBusinessService interface {
	Create(ctx context.Context, s *types.Session, req *types.CreateBusinessReq) (*types.BusinessResp, error)
	Get(ctx context.Context, id uint64) (*types.BusinessResp, error)
	List(ctx context.Context, req *types.ListBusinessesReq) (*types.ListBusinessesResp, error)
	Update(ctx context.Context, s *types.Session, id uint64, req *types.UpdateBusinessReq) (*types.BusinessResp, error)
	AddService(ctx context.Context, s *types.Session, id uint64, req *types.CreateServiceReq) (*types.ServiceResp, error)
	ListRedeemables(ctx context.Context, id uint64) ([]types.RedeemableResp, error)
	CreateRedeemable(ctx context.Context, s *types.Session, id uint64, req *types.CreateRedeemableReq) (*types.RedeemableResp, error)
	DeleteRedeemable(ctx context.Context, s *types.Session, id, rid uint64) error
	// Owned returns the business when the session may manage it.
	Owned(ctx context.Context, s *types.Session, id uint64) (*models.Business, error)
}

type BusinessService struct {
	Businesses  BusinessStore
	Services    ServiceStore
	Redeemables RedeemableStore
	Reviews     ReviewStore
	Referral    IReferralService
	Now         func() time.Time `wire:"-"`
}

func (s *BusinessService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func businessResp(b *models.Business) types.BusinessResp {
	return types.BusinessResp{
		ID:          b.ID,
		OwnerID:     b.OwnerID,
		Name:        b.Name,
		Description: b.Description,
		Phone:       b.Phone,
		Email:       b.Email,
		Address:     b.Address,
		City:        b.City,
		LogoURL:     b.LogoURL,
		Complete:    b.ProfileComplete(),
	}
}

func serviceResp(s *models.BusinessService) types.ServiceResp {
	return types.ServiceResp{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		PriceCents:      s.PriceCents,
	}
}

func redeemableResp(r *models.BusinessRedeemable) types.RedeemableResp {
	return types.RedeemableResp{
		ID:          r.ID,
		BusinessID:  r.BusinessID,
		Title:       r.Title,
		Description: r.Description,
		PointsCost:  r.PointsCost,
		ValidDays:   r.ValidDays,
	}
}

func (s *BusinessService) Owned(ctx context.Context, sess *types.Session, id uint64) (*models.Business, error) {
	b, err := s.Businesses.FindById(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if b.OwnerID != sess.UserID && !sess.Is(models.RoleAdmin) {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *BusinessService) Create(ctx context.Context, sess *types.Session, req *types.CreateBusinessReq) (*types.BusinessResp, error) {
	if !sess.Is(models.RoleBusiness) && !sess.Is(models.RoleAdmin) {
		return nil, ErrForbidden
	}
	b := &models.Business{
		OwnerID:     sess.UserID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Phone:       strings.TrimSpace(req.Phone),
		Email:       utils.NormalizeEmail(req.Email),
		Address:     strings.TrimSpace(req.Address),
		City:        strings.TrimSpace(req.City),
		LogoURL:     req.LogoURL,
	}
	if err := s.Businesses.Create(ctx, b); err != nil {
		return nil, err
	}
	s.checkCompletion(ctx, b)
	resp := businessResp(b)
	return &resp, nil
}

// checkCompletion stamps the first time a profile becomes complete and runs
// the business referral reward for the owner.
func (s *BusinessService) checkCompletion(ctx context.Context, b *models.Business) {
	if !b.ProfileComplete() || b.CompletedAt != nil {
		return
	}
	now := s.now()
	first, err := s.Businesses.MarkCompleted(ctx, b.ID, now)
	if err != nil {
		log.L.Error("mark business completed failed", zap.Uint64("business_id", b.ID), zap.Error(err))
		return
	}
	if !first {
		return
	}
	b.CompletedAt = &now
	if err := s.Referral.OnBusinessCompleted(ctx, b.OwnerID); err != nil {
		log.L.Error("business referral reward failed", zap.Uint64("business_id", b.ID), zap.Error(err))
	}
}

func (s *BusinessService) Get(ctx context.Context, id uint64) (*types.BusinessResp, error) {
	b, err := s.Businesses.FindById(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	resp := businessResp(b)

	services, err := s.Services.ListByBusiness(ctx, id)
	if err != nil {
		return nil, err
	}
	resp.Services = make([]types.ServiceResp, 0, len(services))
	for _, svc := range services {
		resp.Services = append(resp.Services, serviceResp(svc))
	}

	if sum, err := s.Reviews.Summary(ctx, id); err == nil {
		resp.Rating = &types.RatingResp{Count: sum.Count, Average: sum.Average}
	} else {
		log.L.Warn("rating summary failed", zap.Uint64("business_id", id), zap.Error(err))
	}
	return &resp, nil
}

func (s *BusinessService) List(ctx context.Context, req *types.ListBusinessesReq) (*types.ListBusinessesResp, error) {
	limit := utils.ClampLimit(req.Limit, 20, 100)
	items, err := s.Businesses.ListPage(ctx, strings.TrimSpace(req.City), req.Cursor, limit+1)
	if err != nil {
		return nil, err
	}
	resp := &types.ListBusinessesResp{Businesses: make([]types.BusinessResp, 0, len(items))}
	if len(items) > limit {
		resp.HasMore = true
		items = items[:limit]
		resp.NextCursor = items[len(items)-1].ID
	}
	for _, b := range items {
		resp.Businesses = append(resp.Businesses, businessResp(b))
	}
	return resp, nil
}

func (s *BusinessService) Update(ctx context.Context, sess *types.Session, id uint64, req *types.UpdateBusinessReq) (*types.BusinessResp, error) {
	b, err := s.Owned(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	set := func(col string, dst *string, v *string, norm func(string) string) {
		if v == nil {
			return
		}
		*dst = norm(*v)
		updates[col] = *dst
	}
	keep := func(v string) string { return v }
	set("name", &b.Name, req.Name, strings.TrimSpace)
	set("description", &b.Description, req.Description, keep)
	set("phone", &b.Phone, req.Phone, strings.TrimSpace)
	set("email", &b.Email, req.Email, utils.NormalizeEmail)
	set("address", &b.Address, req.Address, strings.TrimSpace)
	set("city", &b.City, req.City, strings.TrimSpace)
	set("logo_url", &b.LogoURL, req.LogoURL, keep)
	if req.Name != nil && b.Name == "" {
		return nil, invalid("El nombre del negocio es obligatorio")
	}

	if err := s.Businesses.Update(ctx, b.ID, updates); err != nil {
		return nil, err
	}
	s.checkCompletion(ctx, b)
	resp := businessResp(b)
	return &resp, nil
}

func (s *BusinessService) AddService(ctx context.Context, sess *types.Session, id uint64, req *types.CreateServiceReq) (*types.ServiceResp, error) {
	b, err := s.Owned(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	duration := req.DurationMinutes
	if duration == 0 {
		duration = 60
	}
	svc := &models.BusinessService{
		BusinessID:      b.ID,
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		DurationMinutes: duration,
		PriceCents:      req.PriceCents,
		Active:          true,
	}
	if err := s.Services.Create(ctx, svc); err != nil {
		return nil, err
	}
	resp := serviceResp(svc)
	return &resp, nil
}

func (s *BusinessService) ListRedeemables(ctx context.Context, id uint64) ([]types.RedeemableResp, error) {
	items, err := s.Redeemables.ListByBusiness(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]types.RedeemableResp, 0, len(items))
	for _, r := range items {
		out = append(out, redeemableResp(r))
	}
	return out, nil
}

func (s *BusinessService) CreateRedeemable(ctx context.Context, sess *types.Session, id uint64, req *types.CreateRedeemableReq) (*types.RedeemableResp, error) {
	b, err := s.Owned(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	r := &models.BusinessRedeemable{
		BusinessID:  b.ID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		PointsCost:  req.PointsCost,
		ValidDays:   req.ValidDays,
		Active:      true,
	}
	if err := s.Redeemables.Create(ctx, r); err != nil {
		return nil, err
	}
	resp := redeemableResp(r)
	return &resp, nil
}

func (s *BusinessService) DeleteRedeemable(ctx context.Context, sess *types.Session, id, rid uint64) error {
	if _, err := s.Owned(ctx, sess, id); err != nil {
		return err
	}
	ok, err := s.Redeemables.Deactivate(ctx, rid, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
