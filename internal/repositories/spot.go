package repositories

import (
	"context"

	"github.com/farellandr/skatefund/internal/logger"
	"github.com/farellandr/skatefund/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SpotRepo interface {
	Create(ctx context.Context, tx *gorm.DB, spot *models.Spot) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Spot, error)
	Save(ctx context.Context, tx *gorm.DB, spot *models.Spot) error
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
	FindAll(ctx context.Context, tx *gorm.DB) ([]*models.Spot, error)
}

type spotRepo struct {
	store[models.Spot]
}

func NewSpotRepo(db *gorm.DB, baseLog *logger.Logger) SpotRepo {
	return &spotRepo{store: newStore[models.Spot](db, baseLog.With("repo", "SpotRepo"), "spot", "Photos")}
}

// DeleteByID drops the spot's own photo links together with the spot. The
// photos themselves stay.
func (sr *spotRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	result := sr.conn(ctx, tx).Select(clause.Associations).Delete(&models.Spot{ID: id})
	if result.Error != nil {
		return false, sr.translate("delete", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}
