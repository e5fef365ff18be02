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
)

type TrickInput struct {
	ID              *uuid.UUID
	Name            string
	ObjectiveAmount int64
}

type TrickService interface {
	Create(ctx context.Context, in TrickInput) (*models.Trick, error)
	Update(ctx context.Context, in TrickInput) (*models.Trick, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Trick, error)
	List(ctx context.Context) ([]*models.Trick, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type trickService struct {
	tricks repositories.TrickRepo
	events EventService
	graph  GraphService
	locks  *locks.Keyed
	log    *logger.Logger
}

func NewTrickService(tricks repositories.TrickRepo, events EventService, graph GraphService, keyed *locks.Keyed, baseLog *logger.Logger) TrickService {
	return &trickService{
		tricks: tricks,
		events: events,
		graph:  graph,
		locks:  keyed,
		log:    baseLog.With("service", "TrickService"),
	}
}

// Create stores a trick and links it to the active event. Without an active
// event nothing is written, and a failed link removes the trick again.
func (s *trickService) Create(ctx context.Context, in TrickInput) (*models.Trick, error) {
	if in.ID != nil {
		return nil, apperr.PreconditionFailed(apperr.CodeIDExists, "a new trick cannot already have an ID")
	}
	if err := validateTrick(in); err != nil {
		return nil, err
	}

	active, err := s.events.FindActive(ctx)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.DomainInvariant(apperr.CodeNoActiveEvent, "no active event to attach the trick to")
		}
		return nil, err
	}

	trick := &models.Trick{
		Name:            strings.TrimSpace(in.Name),
		ObjectiveAmount: in.ObjectiveAmount,
	}
	if err := s.tricks.Create(ctx, nil, trick); err != nil {
		return nil, err
	}
	if _, err := s.graph.Attach(ctx, EventTricks, active.ID, trick.ID); err != nil {
		if _, delErr := s.tricks.DeleteByID(ctx, nil, trick.ID); delErr != nil {
			s.log.Error("Failed to drop unattached trick", "trick_id", trick.ID, "error", delErr)
		}
		return nil, err
	}

	s.log.Info("Trick created", "trick_id", trick.ID, "event_id", active.ID)
	return trick, nil
}

// Update changes name and objective. The running total is owned by pledges
// and is never written from here.
func (s *trickService) Update(ctx context.Context, in TrickInput) (*models.Trick, error) {
	if in.ID == nil {
		return nil, apperr.PreconditionFailed(apperr.CodeIDNull, "a trick update needs an ID")
	}
	if err := validateTrick(in); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(trickKey(*in.ID))
	defer unlock()

	trick, err := s.tricks.GetByID(ctx, nil, *in.ID)
	if err != nil {
		return nil, err
	}
	trick.Name = strings.TrimSpace(in.Name)
	trick.ObjectiveAmount = in.ObjectiveAmount
	if err := s.tricks.Save(ctx, nil, trick); err != nil {
		return nil, err
	}
	return trick, nil
}

func (s *trickService) Get(ctx context.Context, id uuid.UUID) (*models.Trick, error) {
	return s.tricks.GetByID(ctx, nil, id)
}

func (s *trickService) List(ctx context.Context) ([]*models.Trick, error) {
	return s.tricks.FindAll(ctx, nil)
}

func (s *trickService) Delete(ctx context.Context, id uuid.UUID) error {
	unlock := s.locks.Lock(trickKey(id))
	defer unlock()

	deleted, err := s.tricks.DeleteByID(ctx, nil, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("trick", id)
	}
	return nil
}

func validateTrick(in TrickInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return apperr.InvalidInput(apperr.CodeRequired, "trick name is required")
	}
	if in.ObjectiveAmount < 0 {
		return apperr.InvalidInput(apperr.CodeInvalidAmount, "objective amount cannot be negative")
	}
	return nil
}
