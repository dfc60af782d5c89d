package service

import (
	"context"
	"errors"
	"io"

	"horta/entities"
)

var (
	ErrUnknownPlanting = errors.New("unknown planting")
	ErrEmptyName       = errors.New("file name is empty after sanitising")
)

type PhotoService interface {
	// Save stores the upload under the upload directory and records its
	// metadata. No partial file is left behind when any step fails.
	Save(ctx context.Context, plantingID int64, name, caption string, r io.Reader) (*entities.Photo, error)
	List(ctx context.Context, plantingID int64) ([]entities.Photo, error)
}
