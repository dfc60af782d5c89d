package repository

import (
	"context"

	"horta/entities"
)

type PhotoRepository interface {
	Create(ctx context.Context, p *entities.Photo) error
	ListByPlanting(ctx context.Context, plantingID int64) ([]entities.Photo, error)
}
