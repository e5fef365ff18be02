package repositories

import (
	"context"
	"strings"

	"github.com/farellandr/skatefund/internal/logger"
	"github.com/farellandr/skatefund/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FanRepo interface {
	Create(ctx context.Context, tx *gorm.DB, fan *models.Fan) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Fan, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
	Save(ctx context.Context, tx *gorm.DB, fan *models.Fan) error
	FindAll(ctx context.Context, tx *gorm.DB) ([]*models.Fan, error)
	FindWhere(ctx context.Context, tx *gorm.DB, query interface{}, args ...interface{}) ([]*models.Fan, error)
	LoginExists(ctx context.Context, tx *gorm.DB, login string) (bool, error)
	PhoneUsed(ctx context.Context, tx *gorm.DB, phone string) (bool, error)
}

type fanRepo struct {
	store[models.Fan]
}

func NewFanRepo(db *gorm.DB, baseLog *logger.Logger) FanRepo {
	return &fanRepo{store: newStore[models.Fan](db, baseLog.With("repo", "FanRepo"), "fan", "User")}
}

// LoginExists only looks at inline fans; account fans carry no login.
func (fr *fanRepo) LoginExists(ctx context.Context, tx *gorm.DB, login string) (bool, error) {
	return fr.exists(ctx, tx, "kind = ? AND LOWER(login) = ?", models.FanKindInline, strings.ToLower(login))
}

func (fr *fanRepo) PhoneUsed(ctx context.Context, tx *gorm.DB, phone string) (bool, error) {
	return fr.exists(ctx, tx, "kind = ? AND (phone = ? OR LOWER(login) = ?)", models.FanKindInline, phone, strings.ToLower(phone))
}

func (fr *fanRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	return fr.deleteWithLinks(ctx, tx, id, joinRef{"event_fans", "fan_id"})
}
