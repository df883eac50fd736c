package service

import (
	"Petly/internal/loyalty"
	"Petly/models"
	"Petly/types"
	"context"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
)

var _ IPetService = (*PetService)(nil)

type IPetService interface {
	Create(ctx context.Context, s *types.Session, req *types.CreatePetReq) (*types.PetMutationResp, error)
	List(ctx context.Context, s *types.Session) ([]types.PetResp, error)
	Get(ctx context.Context, s *types.Session, id uint64) (*types.PetResp, error)
	// Update grants pet_updated once per idemKey; an empty key always grants.
	Update(ctx context.Context, s *types.Session, id uint64, req *types.UpdatePetReq, idemKey string) (*types.PetMutationResp, error)
	Delete(ctx context.Context, s *types.Session, id uint64) error
	UploadPhoto(ctx context.Context, s *types.Session, id uint64, header *multipart.FileHeader) (*types.PetMutationResp, error)
}

type PetService struct {
	Pets   PetStore
	Reward IRewardService
	Upload IUploadService
}

const dateLayout = "2006-01-02"

func petResp(p *models.Pet) types.PetResp {
	out := types.PetResp{
		ID:       p.ID,
		Name:     p.Name,
		Species:  p.Species,
		Breed:    p.Breed,
		WeightKg: p.WeightKg,
		Notes:    p.Notes,
		PhotoURL: p.PhotoURL,
	}
	if p.BirthDate != nil {
		out.BirthDate = p.BirthDate.Format(dateLayout)
	}
	return out
}

func parseBirthDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, invalid("La fecha de nacimiento debe tener el formato AAAA-MM-DD")
	}
	if t.After(time.Now()) {
		return nil, invalid("La fecha de nacimiento no puede ser futura")
	}
	return &t, nil
}

func (s *PetService) Create(ctx context.Context, sess *types.Session, req *types.CreatePetReq) (*types.PetMutationResp, error) {
	birth, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}
	pet := &models.Pet{
		OwnerID:   sess.UserID,
		Name:      strings.TrimSpace(req.Name),
		Species:   req.Species,
		Breed:     req.Breed,
		BirthDate: birth,
		WeightKg:  req.WeightKg,
		Notes:     req.Notes,
	}
	if pet.Name == "" {
		return nil, invalid("El nombre de la mascota es obligatorio")
	}
	if err := s.Pets.Create(ctx, pet); err != nil {
		return nil, err
	}

	res, err := s.Reward.Grant(ctx, sess.UserID, loyalty.PetRegistered,
		grantKey(loyalty.PetRegistered, pet.ID), 0, map[string]any{"pet_id": pet.ID})
	if err != nil {
		return nil, err
	}
	return &types.PetMutationResp{Pet: petResp(pet), PointsEarned: earned(res, loyalty.PointsFor(loyalty.PetRegistered))}, nil
}

func (s *PetService) List(ctx context.Context, sess *types.Session) ([]types.PetResp, error) {
	pets, err := s.Pets.ListByOwner(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	out := make([]types.PetResp, 0, len(pets))
	for _, p := range pets {
		out = append(out, petResp(p))
	}
	return out, nil
}

func (s *PetService) Get(ctx context.Context, sess *types.Session, id uint64) (*types.PetResp, error) {
	pet, err := s.Pets.FindOwned(ctx, id, sess.UserID)
	if err != nil {
		return nil, notFound(err)
	}
	resp := petResp(pet)
	return &resp, nil
}

func (s *PetService) Update(ctx context.Context, sess *types.Session, id uint64, req *types.UpdatePetReq, idemKey string) (*types.PetMutationResp, error) {
	pet, err := s.Pets.FindOwned(ctx, id, sess.UserID)
	if err != nil {
		return nil, notFound(err)
	}

	updates := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, invalid("El nombre de la mascota es obligatorio")
		}
		pet.Name = name
		updates["name"] = name
	}
	if req.Species != nil {
		pet.Species = *req.Species
		updates["species"] = pet.Species
	}
	if req.Breed != nil {
		pet.Breed = *req.Breed
		updates["breed"] = pet.Breed
	}
	if req.BirthDate != nil {
		birth, err := parseBirthDate(*req.BirthDate)
		if err != nil {
			return nil, err
		}
		pet.BirthDate = birth
		updates["birth_date"] = birth
	}
	if req.WeightKg != nil {
		pet.WeightKg = *req.WeightKg
		updates["weight_kg"] = pet.WeightKg
	}
	if req.Notes != nil {
		pet.Notes = *req.Notes
		updates["notes"] = pet.Notes
	}
	if len(updates) == 0 {
		return &types.PetMutationResp{Pet: petResp(pet)}, nil
	}
	if err := s.Pets.Update(ctx, pet.ID, updates); err != nil {
		return nil, err
	}

	if idemKey == "" {
		idemKey = uuid.NewString()
	}
	res, err := s.Reward.Grant(ctx, sess.UserID, loyalty.PetUpdated,
		grantKey(loyalty.PetUpdated, pet.ID, idemKey), 0, map[string]any{"pet_id": pet.ID})
	if err != nil {
		return nil, err
	}
	return &types.PetMutationResp{Pet: petResp(pet), PointsEarned: earned(res, loyalty.PointsFor(loyalty.PetUpdated))}, nil
}

func (s *PetService) Delete(ctx context.Context, sess *types.Session, id uint64) error {
	ok, err := s.Pets.Delete(ctx, id, sess.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// UploadPhoto stores a new photo; pet_photo_uploaded is granted only for the first one.
// The grant is keyed per pet and issued on every upload, so a grant that
// failed after the first photo was saved is applied by the next upload.
func (s *PetService) UploadPhoto(ctx context.Context, sess *types.Session, id uint64, header *multipart.FileHeader) (*types.PetMutationResp, error) {
	pet, err := s.Pets.FindOwned(ctx, id, sess.UserID)
	if err != nil {
		return nil, notFound(err)
	}

	up, err := s.Upload.UploadImage(ctx, sess.UserID, "pets", header)
	if err != nil {
		return nil, err
	}
	if _, err := s.Pets.SetPhoto(ctx, pet.ID, up.FileURL); err != nil {
		return nil, err
	}
	pet.PhotoURL = up.FileURL

	res, err := s.Reward.Grant(ctx, sess.UserID, loyalty.PetPhotoUploaded,
		grantKey(loyalty.PetPhotoUploaded, pet.ID), 0, map[string]any{"pet_id": pet.ID})
	if err != nil {
		return nil, err
	}
	return &types.PetMutationResp{
		Pet:          petResp(pet),
		PointsEarned: earned(res, loyalty.PointsFor(loyalty.PetPhotoUploaded)),
	}, nil
}
