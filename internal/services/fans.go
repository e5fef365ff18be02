package services

import (
	"context"
	"errors"
	"strings"

	"github.com/farellandr/skatefund/internal/apperr"
	"github.com/farellandr/skatefund/internal/helpers"
	"github.com/farellandr/skatefund/internal/locks"
	"github.com/farellandr/skatefund/internal/logger"
	"github.com/farellandr/skatefund/internal/models"
	"github.com/farellandr/skatefund/internal/repositories"
	"github.com/google/uuid"
)

// FanInput describes either fan shape. A set UserID makes an account fan and
// the profile fields are ignored.
type FanInput struct {
	ID       *uuid.UUID
	UserID   *uuid.UUID
	FullName string
	Email    string
	Phone    string
	Login    string
	Password string
	Picture  string
}

type FanService interface {
	Create(ctx context.Context, in FanInput) (*models.Fan, error)
	Update(ctx context.Context, in FanInput) (*models.Fan, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Fan, error)
	List(ctx context.Context) ([]*models.Fan, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type fanService struct {
	fans  repositories.FanRepo
	users repositories.UserRepo
	locks *locks.Keyed
	log   *logger.Logger
}

func NewFanService(fans repositories.FanRepo, users repositories.UserRepo, keyed *locks.Keyed, baseLog *logger.Logger) FanService {
	return &fanService{
		fans:  fans,
		users: users,
		locks: keyed,
		log:   baseLog.With("service", "FanService"),
	}
}

func (s *fanService) Create(ctx context.Context, in FanInput) (*models.Fan, error) {
	if in.ID != nil {
		return nil, apperr.PreconditionFailed(apperr.CodeIDExists, "a new fan cannot already have an ID")
	}
	if in.UserID != nil {
		return s.createAccountFan(ctx, *in.UserID)
	}
	return s.createInlineFan(ctx, in)
}

func (s *fanService) createAccountFan(ctx context.Context, userID uuid.UUID) (*models.Fan, error) {
	if _, err := s.users.GetByID(ctx, nil, userID); err != nil {
		return nil, err
	}
	fan := &models.Fan{Kind: models.FanKindAccount, UserID: &userID}
	if err := s.fans.Create(ctx, nil, fan); err != nil {
		return nil, err
	}
	return s.fans.GetByID(ctx, nil, fan.ID)
}

func (s *fanService) createInlineFan(ctx context.Context, in FanInput) (*models.Fan, error) {
	first, last, err := helpers.SplitFullName(in.FullName)
	if err != nil {
		return nil, err
	}
	phone := strings.TrimSpace(in.Phone)
	login := strings.ToLower(strings.TrimSpace(in.Login))
	if login == "" {
		login = strings.ToLower(phone)
	}

	fan := &models.Fan{
		Kind:      models.FanKindInline,
		FullName:  strings.TrimSpace(in.FullName),
		FirstName: first,
		LastName:  last,
		Email:     strings.TrimSpace(in.Email),
		Phone:     phone,
		Picture:   strings.TrimSpace(in.Picture),
		Activated: true,
	}
	if in.Password != "" {
		if fan.Password, err = hashPassword(in.Password); err != nil {
			return nil, err
		}
	}

	if login != "" {
		unlock := lockIdentity(s.locks, login, phone)
		defer unlock()
		if err := checkIdentityFree(ctx, s.users, s.fans, login, phone); err != nil {
			return nil, err
		}
		fan.Login = &login
	}

	if err := s.fans.Create(ctx, nil, fan); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, apperr.Conflict(apperr.CodeLoginAlreadyUsed)
		}
		return nil, err
	}
	s.log.Info("Fan created", "fan_id", fan.ID)
	return fan, nil
}

// Update replaces an inline fan's profile. An empty password keeps the stored
// hash. Account fans only follow their user, so the only change accepted for
// them is a user that still exists.
func (s *fanService) Update(ctx context.Context, in FanInput) (*models.Fan, error) {
	if in.ID == nil {
		return nil, apperr.PreconditionFailed(apperr.CodeIDNull, "an updated fan needs an ID")
	}
	id := *in.ID

	login := strings.ToLower(strings.TrimSpace(in.Login))
	if login != "" {
		unlockIdentity := lockIdentity(s.locks, login)
		defer unlockIdentity()
	}
	unlock := s.locks.Lock(ownerKey(memberFan, id))
	defer unlock()

	fan, err := s.fans.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}

	if fan.Kind == models.FanKindAccount {
		if fan.UserID == nil {
			return nil, apperr.DomainInvariant("", "account fan %s has no user", id)
		}
		if _, err := s.users.GetByID(ctx, nil, *fan.UserID); err != nil {
			return nil, err
		}
		return fan, nil
	}

	first, last, err := helpers.SplitFullName(in.FullName)
	if err != nil {
		return nil, err
	}
	fan.FullName = strings.TrimSpace(in.FullName)
	fan.FirstName = first
	fan.LastName = last
	fan.Email = strings.TrimSpace(in.Email)
	fan.Phone = strings.TrimSpace(in.Phone)
	fan.Picture = strings.TrimSpace(in.Picture)
	if in.Password != "" {
		if fan.Password, err = hashPassword(in.Password); err != nil {
			return nil, err
		}
	}
	if login != "" {
		if err := checkLoginFreeFor(ctx, s.users, s.fans, login, id); err != nil {
			return nil, err
		}
		fan.Login = &login
	}

	if err := s.fans.Save(ctx, nil, fan); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, apperr.Conflict(apperr.CodeLoginAlreadyUsed)
		}
		return nil, err
	}
	s.log.Info("Fan updated", "fan_id", fan.ID)
	return s.fans.GetByID(ctx, nil, id)
}

func (s *fanService) Get(ctx context.Context, id uuid.UUID) (*models.Fan, error) {
	return s.fans.GetByID(ctx, nil, id)
}

func (s *fanService) List(ctx context.Context) ([]*models.Fan, error) {
	return s.fans.FindAll(ctx, nil)
}

func (s *fanService) Delete(ctx context.Context, id uuid.UUID) error {
	unlock := s.locks.Lock(ownerKey(memberFan, id))
	defer unlock()

	deleted, err := s.fans.DeleteByID(ctx, nil, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("fan", id)
	}
	return nil
}
