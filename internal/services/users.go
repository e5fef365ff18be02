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
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Login     string
	Password  string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Country   string
}

// UserUpdate replaces a user's profile. An empty Password keeps the stored
// hash.
type UserUpdate struct {
	ID        *uuid.UUID
	Login     string
	Password  string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Country   string
}

const recordUser = "user"

type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Authenticate(ctx context.Context, login, password string) (*models.User, error)
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, in UserUpdate) (*models.User, error)
	SetPicture(ctx context.Context, id uuid.UUID, image string) (*models.User, error)
}

type userService struct {
	users repositories.UserRepo
	fans  repositories.FanRepo
	locks *locks.Keyed
	log   *logger.Logger
}

func NewUserService(users repositories.UserRepo, fans repositories.FanRepo, keyed *locks.Keyed, baseLog *logger.Logger) UserService {
	return &userService{
		users: users,
		fans:  fans,
		locks: keyed,
		log:   baseLog.With("service", "UserService"),
	}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	login := strings.ToLower(strings.TrimSpace(in.Login))
	if login == "" {
		return nil, apperr.InvalidInput(apperr.CodeRequired, "login is required")
	}
	if in.Password == "" {
		return nil, apperr.InvalidInput(apperr.CodeRequired, "password is required")
	}
	phone := strings.TrimSpace(in.Phone)

	unlock := lockIdentity(s.locks, login, phone)
	defer unlock()

	if err := checkIdentityFree(ctx, s.users, s.fans, login, phone); err != nil {
		return nil, err
	}

	hashed, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Login:     login,
		Password:  hashed,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.TrimSpace(in.Email),
		Phone:     phone,
		Country:   strings.TrimSpace(in.Country),
		Activated: true,
	}
	if err := s.users.Create(ctx, nil, user); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, apperr.Conflict(apperr.CodeLoginAlreadyUsed)
		}
		return nil, err
	}

	s.log.Info("User registered", "user_id", user.ID, "login", login)
	return user, nil
}

// Authenticate reports the same error for an unknown login and a wrong
// password.
func (s *userService) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	user, err := s.users.GetByLogin(ctx, nil, strings.ToLower(strings.TrimSpace(login)))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, badCredentials()
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, badCredentials()
	}
	return user, nil
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.users.GetByID(ctx, nil, id)
}

func (s *userService) Update(ctx context.Context, in UserUpdate) (*models.User, error) {
	if in.ID == nil {
		return nil, apperr.PreconditionFailed(apperr.CodeIDNull, "an updated user needs an ID")
	}
	login := strings.ToLower(strings.TrimSpace(in.Login))
	if login == "" {
		return nil, apperr.InvalidInput(apperr.CodeRequired, "login is required")
	}

	unlockIdentity := lockIdentity(s.locks, login)
	defer unlockIdentity()
	unlock := s.locks.Lock(ownerKey(recordUser, *in.ID))
	defer unlock()

	user, err := s.users.GetByID(ctx, nil, *in.ID)
	if err != nil {
		return nil, err
	}
	if err := checkLoginFreeFor(ctx, s.users, s.fans, login, user.ID); err != nil {
		return nil, err
	}

	user.Login = login
	user.FirstName = strings.TrimSpace(in.FirstName)
	user.LastName = strings.TrimSpace(in.LastName)
	user.Email = strings.TrimSpace(in.Email)
	user.Phone = strings.TrimSpace(in.Phone)
	user.Country = strings.TrimSpace(in.Country)
	if in.Password != "" {
		if user.Password, err = hashPassword(in.Password); err != nil {
			return nil, err
		}
	}
	if err := s.users.Save(ctx, nil, user); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, apperr.Conflict(apperr.CodeLoginAlreadyUsed)
		}
		return nil, err
	}

	s.log.Info("User updated", "user_id", user.ID, "login", login)
	return user, nil
}

// SetPicture stores an image URL or data URI as the user's picture.
func (s *userService) SetPicture(ctx context.Context, id uuid.UUID, image string) (*models.User, error) {
	if err := helpers.ValidateImagePayload(image); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(ownerKey(recordUser, id))
	defer unlock()

	user, err := s.users.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	user.Picture = strings.TrimSpace(image)
	if err := s.users.Save(ctx, nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

func badCredentials() error {
	return apperr.InvalidInput(apperr.CodeBadCredentials, "invalid credentials")
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperr.InvalidInput("", "password cannot be hashed: %v", err)
	}
	return string(hashed), nil
}
