package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"horta/entities"
	"horta/pkg/photo/repository"
)

type photoRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PhotoRepository { return &photoRepo{db} }

func (r *photoRepo) Create(ctx context.Context, p *entities.Photo) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *photoRepo) ListByPlanting(ctx context.Context, plantingID int64) ([]entities.Photo, error) {
	out := []entities.Photo{}
	if err := r.db.WithContext(ctx).Where("planting_id = ?", plantingID).Order("created_at ASC, id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
