package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/farellandr/skatefund/internal/apperr"
	"github.com/farellandr/skatefund/internal/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// store is the key-addressed document access shared by every entity repo.
// Owned association sets are never written through it; see RelationRepo.
type store[T any] struct {
	db       *gorm.DB
	log      *logger.Logger
	entity   string
	preloads []string
}

func newStore[T any](db *gorm.DB, baseLog *logger.Logger, entity string, preloads ...string) store[T] {
	return store[T]{db: db, log: baseLog, entity: entity, preloads: preloads}
}

func (s store[T]) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	return transaction.WithContext(ctx)
}

func (s store[T]) withPreloads(q *gorm.DB) *gorm.DB {
	for _, p := range s.preloads {
		q = q.Preload(p)
	}
	return q
}

func (s store[T]) translate(op string, id any, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(s.entity, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.New(apperr.KindConflict, "", err)
	}
	s.log.Error("store operation failed", "entity", s.entity, "op", op, "error", err)
	return apperr.Store(s.entity+" "+op, err)
}

func (s store[T]) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*T, error) {
	var out T
	err := s.withPreloads(s.conn(ctx, tx)).Where("id = ?", id).First(&out).Error
	if err != nil {
		return nil, s.translate("get", id, err)
	}
	return &out, nil
}

func (s store[T]) Create(ctx context.Context, tx *gorm.DB, entity *T) error {
	return s.translate("create", nil, s.conn(ctx, tx).Omit(clause.Associations).Create(entity).Error)
}

// Save rewrites every scalar column of an existing row. Association sets are
// left alone. A row deleted meanwhile is reported as NotFound, never inserted
// again.
func (s store[T]) Save(ctx context.Context, tx *gorm.DB, entity *T) error {
	result := s.conn(ctx, tx).Model(entity).Select("*").Omit(clause.Associations).Updates(entity)
	if result.Error != nil {
		return s.translate("save", nil, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.New(apperr.KindNotFound, "", fmt.Errorf("%s no longer exists", s.entity))
	}
	return nil
}

// DeleteByID reports whether a row was removed.
func (s store[T]) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	var zero T
	result := s.conn(ctx, tx).Where("id = ?", id).Delete(&zero)
	if result.Error != nil {
		return false, s.translate("delete", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// joinRef names a many2many join table column pointing at T.
type joinRef struct {
	table  string
	column string
}

// deleteWithLinks removes the link rows pointing at id before the record
// itself, so owners never keep references to deleted members.
func (s store[T]) deleteWithLinks(ctx context.Context, tx *gorm.DB, id uuid.UUID, links ...joinRef) (bool, error) {
	var deleted bool
	err := s.conn(ctx, tx).Transaction(func(q *gorm.DB) error {
		for _, link := range links {
			if err := q.Exec("DELETE FROM "+link.table+" WHERE "+link.column+" = ?", id).Error; err != nil {
				return err
			}
		}
		var zero T
		result := q.Where("id = ?", id).Delete(&zero)
		deleted = result.RowsAffected > 0
		return result.Error
	})
	if err != nil {
		return false, s.translate("delete", id, err)
	}
	return deleted, nil
}

func (s store[T]) FindAll(ctx context.Context, tx *gorm.DB) ([]*T, error) {
	var results []*T
	err := s.withPreloads(s.conn(ctx, tx)).Order("created_at ASC").Find(&results).Error
	if err != nil {
		return nil, s.translate("find all", nil, err)
	}
	return results, nil
}

// FindWhere returns every record matching a gorm condition, in creation order.
func (s store[T]) FindWhere(ctx context.Context, tx *gorm.DB, query interface{}, args ...interface{}) ([]*T, error) {
	var results []*T
	err := s.withPreloads(s.conn(ctx, tx)).Where(query, args...).Order("created_at ASC").Find(&results).Error
	if err != nil {
		return nil, s.translate("find where", nil, err)
	}
	return results, nil
}

func (s store[T]) exists(ctx context.Context, tx *gorm.DB, query interface{}, args ...interface{}) (bool, error) {
	var zero T
	var count int64
	if err := s.conn(ctx, tx).Model(&zero).Where(query, args...).Count(&count).Error; err != nil {
		return false, s.translate("count", nil, err)
	}
	return count > 0, nil
}
