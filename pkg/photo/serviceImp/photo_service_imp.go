package serviceImp

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"horta/entities"
	"horta/pkg/fileutil"
	"horta/pkg/photo/repository"
	svc "horta/pkg/photo/service"
)

type photoSvc struct {
	repo   repository.PhotoRepository
	dir    string
	exists func(plantingID int64) bool
	now    func() time.Time
}

func New(repo repository.PhotoRepository, dir string, exists func(int64) bool) svc.PhotoService {
	return &photoSvc{repo: repo, dir: dir, exists: exists, now: time.Now}
}

func (s *photoSvc) Save(ctx context.Context, plantingID int64, name, caption string, r io.Reader) (*entities.Photo, error) {
	if s.exists != nil && !s.exists(plantingID) {
		return nil, fmt.Errorf("%w: %d", svc.ErrUnknownPlanting, plantingID)
	}
	clean := SanitizeName(name)
	if clean == "" {
		return nil, svc.ErrEmptyName
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, err
	}

	at := s.now()
	file := FileName(plantingID, at, uuid.NewString()[:8], clean)
	err := fileutil.WriteScoped(filepath.Join(s.dir, file), func(w io.Writer) error {
		if _, err := io.Copy(w, r); err != nil {
			return fmt.Errorf("write upload: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	p := &entities.Photo{PlantingID: plantingID, File: file, Caption: caption, CreatedAt: at}
	if err := s.repo.Create(ctx, p); err != nil {
		_ = os.Remove(filepath.Join(s.dir, file))
		return nil, err
	}
	log.Printf("[photo] saved %s for planting %d", file, plantingID)
	return p, nil
}

func (s *photoSvc) List(ctx context.Context, plantingID int64) ([]entities.Photo, error) {
	return s.repo.ListByPlanting(ctx, plantingID)
}
