package dao

import (
	"Petly/models"
	"context"
	"fmt"

	"gorm.io/gorm"
)

type Pets struct {
	Repo[models.Pet]
}

func NewPets(db *gorm.DB) *Pets {
	return &Pets{Repo: NewRepo[models.Pet](db)}
}

func (p *Pets) FindOwned(ctx context.Context, id, ownerID uint64) (*models.Pet, error) {
	return p.Repo.FindByWhere(ctx, "id = ? AND owner_id = ?", id, ownerID)
}

func (p *Pets) ListByOwner(ctx context.Context, ownerID uint64) ([]*models.Pet, error) {
	return p.Repo.FindAll(ctx, "owner_id = ?", ownerID)
}

func (p *Pets) Update(ctx context.Context, id uint64, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	if err := p.Db.WithContext(ctx).Model(&models.Pet{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("dao.Pets.Update error: %w", err)
	}
	return nil
}

// SetPhoto stores the photo url and reports whether the pet had none before.
func (p *Pets) SetPhoto(ctx context.Context, id uint64, url string) (first bool, err error) {
	res := p.Db.WithContext(ctx).Model(&models.Pet{}).
		Where("id = ? AND photo_url = ''", id).
		Update("photo_url", url)
	if res.Error != nil {
		return false, fmt.Errorf("dao.Pets.SetPhoto error: %w", res.Error)
	}
	if res.RowsAffected == 1 {
		return true, nil
	}
	if err := p.Db.WithContext(ctx).Model(&models.Pet{}).Where("id = ?", id).Update("photo_url", url).Error; err != nil {
		return false, fmt.Errorf("dao.Pets.SetPhoto error: %w", err)
	}
	return false, nil
}

func (p *Pets) Delete(ctx context.Context, id, ownerID uint64) (bool, error) {
	res := p.Db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Pet{})
	return res.RowsAffected == 1, res.Error
}
