package repositories

import (
	"context"

	"github.com/farellandr/skatefund/internal/logger"
	"github.com/farellandr/skatefund/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, event *models.Event) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Event, error)
	Save(ctx context.Context, tx *gorm.DB, event *models.Event) error
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
	FindAll(ctx context.Context, tx *gorm.DB) ([]*models.Event, error)
	FindWhere(ctx context.Context, tx *gorm.DB, query interface{}, args ...interface{}) ([]*models.Event, error)
	DeactivateAllExcept(ctx context.Context, tx *gorm.DB, keepID uuid.UUID) (int64, error)
}

type eventRepo struct {
	store[models.Event]
}

func NewEventRepo(db *gorm.DB, baseLog *logger.Logger) EventRepo {
	return &eventRepo{store: newStore[models.Event](db, baseLog.With("repo", "EventRepo"), "event",
		"Tricks", "Players.User", "Fans", "Photos")}
}

func (er *eventRepo) DeactivateAllExcept(ctx context.Context, tx *gorm.DB, keepID uuid.UUID) (int64, error) {
	result := er.conn(ctx, tx).
		Model(&models.Event{}).
		Where("id <> ? AND active = ?", keepID, true).
		Update("active", false)
	if result.Error != nil {
		return 0, er.translate("deactivate", keepID, result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteByID drops the event's link rows together with the event. Linked
// tricks, players, fans and photos stay.
func (er *eventRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	result := er.conn(ctx, tx).Select(clause.Associations).Delete(&models.Event{ID: id})
	if result.Error != nil {
		return false, er.translate("delete", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}
