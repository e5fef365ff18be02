package repositories

import (
	"context"

	"github.com/farellandr/skatefund/internal/logger"
	"github.com/farellandr/skatefund/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PhotoRepo interface {
	Create(ctx context.Context, tx *gorm.DB, photo *models.Photo) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Photo, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
}

type photoRepo struct {
	store[models.Photo]
}

func NewPhotoRepo(db *gorm.DB, baseLog *logger.Logger) PhotoRepo {
	return &photoRepo{store: newStore[models.Photo](db, baseLog.With("repo", "PhotoRepo"), "photo")}
}

// DeleteByID also drops the photo from any event or spot still holding it.
func (pr *photoRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	return pr.deleteWithLinks(ctx, tx, id,
		joinRef{"event_photos", "photo_id"},
		joinRef{"spot_photos", "photo_id"})
}
