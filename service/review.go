package service

import (
	"Petly/dao"
	"Petly/internal/appointment"
	"Petly/internal/loyalty"
	"Petly/models"
	"Petly/pkg/utils"
	"Petly/types"
	"context"
	"errors"
	"strings"
)

var ErrAlreadyReviewed = dao.ErrAlreadyReviewed

var _ IReviewService = (*ReviewService)(nil)

type IReviewService interface {
	Submit(ctx context.Context, s *types.Session, appointmentID uint64, req *types.SubmitReviewReq) (*types.SubmitReviewResp, error)
	// ResolveToken decodes a review link into the appointment it belongs to.
	ResolveToken(ctx context.Context, token string) (*types.ReviewTokenResp, error)
	ListByBusiness(ctx context.Context, businessID uint64, req *types.CursorReq) (*types.ListReviewsResp, error)
}

type ReviewService struct {
	Appointments AppointmentStore
	Reviews      ReviewStore
	Reward       IRewardService
	Parties      *PartyLoader
	Hasher       *utils.Hasher
}

func reviewResp(r *models.Review) types.ReviewResp {
	return types.ReviewResp{
		ID:            r.ID,
		AppointmentID: r.AppointmentID,
		BusinessID:    r.BusinessID,
		UserID:        r.UserID,
		Rating:        r.Rating,
		Comment:       r.Comment,
		CreatedAt:     r.CreatedAt,
	}
}

func (s *ReviewService) Submit(ctx context.Context, sess *types.Session, appointmentID uint64, req *types.SubmitReviewReq) (*types.SubmitReviewResp, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, invalid("La valoración debe estar entre 1 y 5")
	}
	a, err := s.Appointments.FindById(ctx, appointmentID)
	if err != nil {
		return nil, notFound(err)
	}
	if a.UserID != sess.UserID {
		return nil, ErrForbidden
	}
	if appointment.Status(a.Status) != appointment.Completed {
		return nil, invalid("Solo puedes valorar citas completadas")
	}
	if a.ReviewSubmitted {
		return nil, s.regrant(ctx, a)
	}

	review := &models.Review{
		AppointmentID: a.ID,
		BusinessID:    a.BusinessID,
		UserID:        a.UserID,
		PetID:         a.PetID,
		Rating:        req.Rating,
		Comment:       strings.TrimSpace(req.Comment),
	}
	if err := s.Appointments.SubmitReview(ctx, review); err != nil {
		if errors.Is(err, dao.ErrAlreadyReviewed) {
			return nil, s.regrant(ctx, a)
		}
		return nil, err
	}

	res, err := s.Reward.Grant(ctx, a.UserID, loyalty.ReviewSubmitted,
		grantKey(loyalty.ReviewSubmitted, a.ID), 0,
		map[string]any{"appointment_id": a.ID, "rating": req.Rating})
	if err != nil {
		return nil, err
	}
	return &types.SubmitReviewResp{
		Review:       reviewResp(review),
		PointsEarned: earned(res, loyalty.PointsFor(loyalty.ReviewSubmitted)),
	}, nil
}

// regrant re-issues the review grant under its original key, so a grant that
// failed after the review was stored is applied on the next submit. The
// submit itself is still rejected.
func (s *ReviewService) regrant(ctx context.Context, a *models.Appointment) error {
	if _, err := s.Reward.Grant(ctx, a.UserID, loyalty.ReviewSubmitted,
		grantKey(loyalty.ReviewSubmitted, a.ID), 0,
		map[string]any{"appointment_id": a.ID}); err != nil {
		return err
	}
	return ErrAlreadyReviewed
}

func (s *ReviewService) ResolveToken(ctx context.Context, token string) (*types.ReviewTokenResp, error) {
	id, err := s.Hasher.DecodeOne(token)
	if err != nil {
		return nil, ErrNotFound
	}
	a, err := s.Appointments.FindById(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	p, _, err := s.Parties.Load(ctx, a)
	if err != nil {
		return nil, err
	}
	return &types.ReviewTokenResp{
		AppointmentID:   a.ID,
		BusinessID:      a.BusinessID,
		BusinessName:    p.BusinessName,
		PetName:         p.PetName,
		ServiceName:     p.ServiceName,
		AppointmentDate: a.AppointmentDate,
		Reviewed:        a.ReviewSubmitted,
	}, nil
}

func (s *ReviewService) ListByBusiness(ctx context.Context, businessID uint64, req *types.CursorReq) (*types.ListReviewsResp, error) {
	limit := utils.ClampLimit(req.Limit, 20, 100)
	items, err := s.Reviews.ListByBusiness(ctx, businessID, req.Cursor, limit+1)
	if err != nil {
		return nil, err
	}
	sum, err := s.Reviews.Summary(ctx, businessID)
	if err != nil {
		return nil, err
	}

	resp := &types.ListReviewsResp{
		Reviews: make([]types.ReviewResp, 0, len(items)),
		Rating:  types.RatingResp{Count: sum.Count, Average: sum.Average},
	}
	if len(items) > limit {
		resp.HasMore = true
		items = items[:limit]
		resp.NextCursor = items[len(items)-1].ID
	}
	for _, r := range items {
		resp.Reviews = append(resp.Reviews, reviewResp(r))
	}
	return resp, nil
}
