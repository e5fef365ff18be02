package repositories

import (
	"context"
	"strings"

	"github.com/farellandr/skatefund/internal/logger"
	"github.com/farellandr/skatefund/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.User, error)
	Save(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByLogin(ctx context.Context, tx *gorm.DB, login string) (*models.User, error)
	LoginExists(ctx context.Context, tx *gorm.DB, login string) (bool, error)
	PhoneUsed(ctx context.Context, tx *gorm.DB, phone string) (bool, error)
}

type userRepo struct {
	store[models.User]
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{store: newStore[models.User](db, baseLog.With("repo", "UserRepo"), "user")}
}

func (ur *userRepo) GetByLogin(ctx context.Context, tx *gorm.DB, login string) (*models.User, error) {
	var user models.User
	err := ur.conn(ctx, tx).Where("LOWER(login) = ?", strings.ToLower(login)).First(&user).Error
	if err != nil {
		return nil, ur.translate("get by login", login, err)
	}
	return &user, nil
}

// LoginExists compares logins case-insensitively.
func (ur *userRepo) LoginExists(ctx context.Context, tx *gorm.DB, login string) (bool, error) {
	return ur.exists(ctx, tx, "LOWER(login) = ?", strings.ToLower(login))
}

// PhoneUsed reports whether phone is some account's phone or its login.
func (ur *userRepo) PhoneUsed(ctx context.Context, tx *gorm.DB, phone string) (bool, error) {
	return ur.exists(ctx, tx, "phone = ? OR LOWER(login) = ?", phone, strings.ToLower(phone))
}
