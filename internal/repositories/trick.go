package repositories

import (
	"context"

	"github.com/farellandr/skatefund/internal/logger"
	"github.com/farellandr/skatefund/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TrickRepo interface {
	Create(ctx context.Context, tx *gorm.DB, trick *models.Trick) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Trick, error)
	Save(ctx context.Context, tx *gorm.DB, trick *models.Trick) error
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
	FindAll(ctx context.Context, tx *gorm.DB) ([]*models.Trick, error)
}

type trickRepo struct {
	store[models.Trick]
}

func NewTrickRepo(db *gorm.DB, baseLog *logger.Logger) TrickRepo {
	return &trickRepo{store: newStore[models.Trick](db, baseLog.With("repo", "TrickRepo"), "trick")}
}

func (tr *trickRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	return tr.deleteWithLinks(ctx, tx, id, joinRef{"event_tricks", "trick_id"})
}
