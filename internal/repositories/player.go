package repositories

import (
	"context"

	"github.com/farellandr/skatefund/internal/logger"
	"github.com/farellandr/skatefund/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlayerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, player *models.Player) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Player, error)
	Save(ctx context.Context, tx *gorm.DB, player *models.Player) error
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
	FindAll(ctx context.Context, tx *gorm.DB) ([]*models.Player, error)
}

type playerRepo struct {
	store[models.Player]
}

func NewPlayerRepo(db *gorm.DB, baseLog *logger.Logger) PlayerRepo {
	return &playerRepo{store: newStore[models.Player](db, baseLog.With("repo", "PlayerRepo"), "player", "User")}
}

func (pr *playerRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	return pr.deleteWithLinks(ctx, tx, id, joinRef{"event_players", "player_id"})
}
