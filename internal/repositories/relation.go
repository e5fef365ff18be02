package repositories

import (
	"context"

	"github.com/farellandr/skatefund/internal/logger"
	"github.com/farellandr/skatefund/internal/models"
	"gorm.io/gorm"
)

// RelationRepo writes single links of an owner's many-to-many set. Owner must
// be a loaded *models.Event or *models.Spot; association is its field name.
type RelationRepo interface {
	Append(ctx context.Context, tx *gorm.DB, owner interface{}, association string, member interface{}) error
	Remove(ctx context.Context, tx *gorm.DB, owner interface{}, association string, member interface{}) error
}

type relationRepo struct {
	store[models.Event]
}

func NewRelationRepo(db *gorm.DB, baseLog *logger.Logger) RelationRepo {
	return &relationRepo{store: newStore[models.Event](db, baseLog.With("repo", "RelationRepo"), "relation")}
}

func (rr *relationRepo) Append(ctx context.Context, tx *gorm.DB, owner interface{}, association string, member interface{}) error {
	err := rr.conn(ctx, tx).Model(owner).Association(association).Append(member)
	return rr.translate("append "+association, nil, err)
}

func (rr *relationRepo) Remove(ctx context.Context, tx *gorm.DB, owner interface{}, association string, member interface{}) error {
	err := rr.conn(ctx, tx).Model(owner).Association(association).Delete(member)
	return rr.translate("remove "+association, nil, err)
}
