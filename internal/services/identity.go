package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/farellandr/skatefund/internal/apperr"
	"github.com/farellandr/skatefund/internal/helpers"
	"github.com/farellandr/skatefund/internal/locks"
	"github.com/farellandr/skatefund/internal/logger"
	"github.com/farellandr/skatefund/internal/models"
	"github.com/farellandr/skatefund/internal/repositories"
	"github.com/google/uuid"
)

// Contributor is the normalized identity behind a pledge. Kind says whether it
// is backed by a User account or by an inline fan record.
type Contributor struct {
	ID     uuid.UUID      `json:"id"`
	Kind   models.FanKind `json:"kind"`
	UserID *uuid.UUID     `json:"userId,omitempty"`
	Fan    *models.Fan    `json:"fan,omitempty"`
	User   *models.User   `json:"user,omitempty"`
}

// ContributorRequest either names an existing contributor or carries the form
// fields for a new one. Login defaults to the phone.
type ContributorRequest struct {
	ExistingID *uuid.UUID
	FullName   string
	Phone      string
	Login      string
	Email      string
}

type IdentityService interface {
	ResolveContributor(ctx context.Context, req ContributorRequest) (*Contributor, error)
}

type identityService struct {
	fans  repositories.FanRepo
	users repositories.UserRepo
	locks *locks.Keyed
	log   *logger.Logger
}

func NewIdentityService(fans repositories.FanRepo, users repositories.UserRepo, keyed *locks.Keyed, baseLog *logger.Logger) IdentityService {
	return &identityService{
		fans:  fans,
		users: users,
		locks: keyed,
		log:   baseLog.With("service", "IdentityService"),
	}
}

func (s *identityService) ResolveContributor(ctx context.Context, req ContributorRequest) (*Contributor, error) {
	if req.ExistingID != nil {
		return s.lookup(ctx, *req.ExistingID)
	}

	first, last, err := helpers.SplitFullName(req.FullName)
	if err != nil {
		return nil, err
	}
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return nil, apperr.InvalidInput(apperr.CodeRequired, "phone is required for a new contributor")
	}
	login := strings.ToLower(strings.TrimSpace(req.Login))
	if login == "" {
		login = strings.ToLower(phone)
	}

	unlock := lockIdentity(s.locks, login, phone)
	defer unlock()

	if err := checkIdentityFree(ctx, s.users, s.fans, login, phone); err != nil {
		return nil, err
	}

	fan := &models.Fan{
		Kind:      models.FanKindInline,
		FullName:  strings.TrimSpace(req.FullName),
		FirstName: first,
		LastName:  last,
		Login:     &login,
		Email:     strings.TrimSpace(req.Email),
		Phone:     phone,
		Activated: true,
	}
	if err := s.fans.Create(ctx, nil, fan); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, apperr.Conflict(apperr.CodeLoginAlreadyUsed)
		}
		return nil, err
	}

	s.log.Info("Contributor provisioned", "fan_id", fan.ID, "login", login)
	return &Contributor{ID: fan.ID, Kind: fan.Kind, Fan: fan}, nil
}

func (s *identityService) lookup(ctx context.Context, id uuid.UUID) (*Contributor, error) {
	fan, err := s.fans.GetByID(ctx, nil, id)
	if err == nil {
		return &Contributor{ID: fan.ID, Kind: fan.Kind, UserID: fan.UserID, Fan: fan}, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.NotFound("contributor", id)
		}
		return nil, err
	}
	return &Contributor{ID: user.ID, Kind: models.FanKindAccount, UserID: &user.ID, User: user}, nil
}

// lockIdentity serializes signups touching the same login or phone. Logins and
// phones share one key space because a phone doubles as a login.
func lockIdentity(keyed *locks.Keyed, values ...string) func() {
	keys := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			keys = append(keys, "identity:"+v)
		}
	}
	sort.Strings(keys)
	return keyed.LockAll(keys...)
}

// checkIdentityFree runs the phone check before the login check so a reused
// phone reports PhoneAlreadyUsed even when it is also the login.
func checkIdentityFree(ctx context.Context, users repositories.UserRepo, fans repositories.FanRepo, login, phone string) error {
	if phone != "" {
		used, err := users.PhoneUsed(ctx, nil, phone)
		if err != nil {
			return err
		}
		if !used {
			if used, err = fans.PhoneUsed(ctx, nil, phone); err != nil {
				return err
			}
		}
		if used {
			return apperr.Conflict(apperr.CodePhoneAlreadyUsed)
		}
	}

	taken, err := users.LoginExists(ctx, nil, login)
	if err != nil {
		return err
	}
	if !taken {
		if taken, err = fans.LoginExists(ctx, nil, login); err != nil {
			return err
		}
	}
	if taken {
		return apperr.Conflict(apperr.CodeLoginAlreadyUsed)
	}
	return nil
}

// checkLoginFreeFor reports LoginAlreadyUsed when a record other than self
// already logs in with login.
func checkLoginFreeFor(ctx context.Context, users repositories.UserRepo, fans repositories.FanRepo, login string, self uuid.UUID) error {
	user, err := users.GetByLogin(ctx, nil, login)
	switch {
	case err == nil && user.ID != self:
		return apperr.Conflict(apperr.CodeLoginAlreadyUsed)
	case err != nil && !errors.Is(err, apperr.ErrNotFound):
		return err
	}

	others, err := fans.FindWhere(ctx, nil, "LOWER(login) = ? AND id <> ?", strings.ToLower(login), self)
	if err != nil {
		return err
	}
	if len(others) > 0 {
		return apperr.Conflict(apperr.CodeLoginAlreadyUsed)
	}
	return nil
}
