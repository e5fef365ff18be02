package services

import (
	"context"
	"errors"
	"strings"

	"github.com/farellandr/skatefund/internal/apperr"
	"github.com/farellandr/skatefund/internal/locks"
	"github.com/farellandr/skatefund/internal/logger"
	"github.com/farellandr/skatefund/internal/models"
	"github.com/farellandr/skatefund/internal/repositories"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlayerInput either links an existing user (UserID) or carries the profile
// of a new one. A provisioned user logs in with Login, or with the phone when
// Login is empty.
type PlayerInput struct {
	ID        *uuid.UUID
	UserID    *uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Country   string
	Login     string
}

// PlayerProfile replaces the profile of the user behind a player.
type PlayerProfile struct {
	ID        *uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Country   string
}

type PlayerService interface {
	Create(ctx context.Context, in PlayerInput) (*models.Player, error)
	Update(ctx context.Context, in PlayerProfile) (*models.Player, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Player, error)
	List(ctx context.Context) ([]*models.Player, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type playerService struct {
	db      *gorm.DB
	players repositories.PlayerRepo
	users   repositories.UserRepo
	fans    repositories.FanRepo
	locks   *locks.Keyed
	log     *logger.Logger
}

func NewPlayerService(db *gorm.DB, players repositories.PlayerRepo, users repositories.UserRepo, fans repositories.FanRepo, keyed *locks.Keyed, baseLog *logger.Logger) PlayerService {
	return &playerService{
		db:      db,
		players: players,
		users:   users,
		fans:    fans,
		locks:   keyed,
		log:     baseLog.With("service", "PlayerService"),
	}
}

func (s *playerService) Create(ctx context.Context, in PlayerInput) (*models.Player, error) {
	if in.ID != nil {
		return nil, apperr.PreconditionFailed(apperr.CodeIDExists, "a new player cannot already have an ID")
	}
	if in.UserID != nil {
		return s.createForUser(ctx, *in.UserID)
	}
	return s.createWithProfile(ctx, in)
}

func (s *playerService) createForUser(ctx context.Context, userID uuid.UUID) (*models.Player, error) {
	if userID == uuid.Nil {
		return nil, apperr.InvalidInput(apperr.CodeRequired, "userId is required")
	}
	if _, err := s.users.GetByID(ctx, nil, userID); err != nil {
		return nil, err
	}

	player := &models.Player{UserID: userID}
	if err := s.players.Create(ctx, nil, player); err != nil {
		return nil, err
	}
	return s.players.GetByID(ctx, nil, player.ID)
}

// createWithProfile provisions the user and the player in one transaction.
func (s *playerService) createWithProfile(ctx context.Context, in PlayerInput) (*models.Player, error) {
	phone := strings.TrimSpace(in.Phone)
	login := strings.ToLower(strings.TrimSpace(in.Login))
	if login == "" {
		login = strings.ToLower(phone)
	}
	if login == "" {
		return nil, apperr.InvalidInput(apperr.CodeRequired, "login or phone is required")
	}

	unlock := lockIdentity(s.locks, login, phone)
	defer unlock()

	if err := checkIdentityFree(ctx, s.users, s.fans, login, phone); err != nil {
		return nil, err
	}

	var player *models.Player
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user := &models.User{
			Login:     login,
			FirstName: strings.TrimSpace(in.FirstName),
			LastName:  strings.TrimSpace(in.LastName),
			Email:     strings.TrimSpace(in.Email),
			Phone:     phone,
			Country:   strings.TrimSpace(in.Country),
			Activated: true,
		}
		if err := s.users.Create(ctx, tx, user); err != nil {
			if errors.Is(err, apperr.ErrConflict) {
				return apperr.Conflict(apperr.CodeLoginAlreadyUsed)
			}
			return err
		}
		player = &models.Player{UserID: user.ID}
		return s.players.Create(ctx, tx, player)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Player created", "player_id", player.ID, "user_id", player.UserID, "login", login)
	return s.players.GetByID(ctx, nil, player.ID)
}

// Update rewrites the profile of the player's user. The login is untouched.
func (s *playerService) Update(ctx context.Context, in PlayerProfile) (*models.Player, error) {
	if in.ID == nil {
		return nil, apperr.PreconditionFailed(apperr.CodeIDNull, "an updated player needs an ID")
	}

	unlock := s.locks.Lock(ownerKey(memberPlayer, *in.ID))
	defer unlock()

	player, err := s.players.GetByID(ctx, nil, *in.ID)
	if err != nil {
		return nil, err
	}

	unlockUser := s.locks.Lock(ownerKey(recordUser, player.UserID))
	defer unlockUser()

	user, err := s.users.GetByID(ctx, nil, player.UserID)
	if err != nil {
		return nil, err
	}
	user.FirstName = strings.TrimSpace(in.FirstName)
	user.LastName = strings.TrimSpace(in.LastName)
	user.Email = strings.TrimSpace(in.Email)
	user.Phone = strings.TrimSpace(in.Phone)
	user.Country = strings.TrimSpace(in.Country)
	if err := s.users.Save(ctx, nil, user); err != nil {
		return nil, err
	}

	s.log.Info("Player updated", "player_id", player.ID, "user_id", user.ID)
	return s.players.GetByID(ctx, nil, player.ID)
}

func (s *playerService) Get(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	return s.players.GetByID(ctx, nil, id)
}

func (s *playerService) List(ctx context.Context) ([]*models.Player, error) {
	return s.players.FindAll(ctx, nil)
}

func (s *playerService) Delete(ctx context.Context, id uuid.UUID) error {
	unlock := s.locks.Lock(ownerKey(memberPlayer, id))
	defer unlock()

	deleted, err := s.players.DeleteByID(ctx, nil, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("player", id)
	}
	return nil
}
