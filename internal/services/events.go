package services

import (
	"context"
	"strings"
	"time"

	"github.com/farellandr/skatefund/internal/apperr"
	"github.com/farellandr/skatefund/internal/locks"
	"github.com/farellandr/skatefund/internal/logger"
	"github.com/farellandr/skatefund/internal/models"
	"github.com/farellandr/skatefund/internal/repositories"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// activationKey guards every write that may flip an event's active flag. It is
// always taken before any per-event key.
const activationKey = "event-activation"

type EventInput struct {
	ID        *uuid.UUID
	Name      string
	Day       *time.Time
	DayString string
	SpotID    *uuid.UUID
	Active    bool
}

type EventService interface {
	Create(ctx context.Context, in EventInput) (*models.Event, error)
	Update(ctx context.Context, in EventInput) (*models.Event, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Event, error)
	List(ctx context.Context) ([]*models.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Activate(ctx context.Context, id uuid.UUID) (*models.Event, error)
	FindActive(ctx context.Context) (*models.Event, error)
	AddImage(ctx context.Context, eventID uuid.UUID, title, image string) (*models.Event, error)
	DeleteImage(ctx context.Context, eventID, photoID uuid.UUID) (*models.Event, error)
}

type eventService struct {
	db     *gorm.DB
	events repositories.EventRepo
	spots  repositories.SpotRepo
	graph  GraphService
	locks  *locks.Keyed
	log    *logger.Logger
}

func NewEventService(db *gorm.DB, events repositories.EventRepo, spots repositories.SpotRepo, graph GraphService, keyed *locks.Keyed, baseLog *logger.Logger) EventService {
	return &eventService{
		db:     db,
		events: events,
		spots:  spots,
		graph:  graph,
		locks:  keyed,
		log:    baseLog.With("service", "EventService"),
	}
}

func (s *eventService) Create(ctx context.Context, in EventInput) (*models.Event, error) {
	if in.ID != nil {
		return nil, apperr.PreconditionFailed(apperr.CodeIDExists, "a new event cannot already have an ID")
	}
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	event := &models.Event{}
	applyEventInput(event, in)

	unlock := s.locks.Lock(activationKey)
	defer unlock()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.events.Create(ctx, tx, event); err != nil {
			return err
		}
		if event.Active {
			return s.deactivateOthers(ctx, tx, event.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Event created", "event_id", event.ID, "active", event.Active)
	return s.events.GetByID(ctx, nil, event.ID)
}

// Update replaces the scalar fields of an event. Link sets are only changed
// through the graph service.
func (s *eventService) Update(ctx context.Context, in EventInput) (*models.Event, error) {
	if in.ID == nil {
		return nil, apperr.PreconditionFailed(apperr.CodeIDNull, "an event update needs an ID")
	}
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	unlock := s.locks.LockAll(activationKey, ownerKey(ownerEvent, *in.ID))
	defer unlock()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event, err := s.events.GetByID(ctx, tx, *in.ID)
		if err != nil {
			return err
		}
		applyEventInput(event, in)
		if err := s.events.Save(ctx, tx, event); err != nil {
			return err
		}
		if event.Active {
			return s.deactivateOthers(ctx, tx, event.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.events.GetByID(ctx, nil, *in.ID)
}

func (s *eventService) Get(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	return s.events.GetByID(ctx, nil, id)
}

func (s *eventService) List(ctx context.Context) ([]*models.Event, error) {
	return s.events.FindAll(ctx, nil)
}

func (s *eventService) Delete(ctx context.Context, id uuid.UUID) error {
	unlock := s.locks.Lock(ownerKey(ownerEvent, id))
	defer unlock()

	deleted, err := s.events.DeleteByID(ctx, nil, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("event", id)
	}
	s.log.Info("Event deleted", "event_id", id)
	return nil
}

// Activate marks id as the active event and clears the flag everywhere else.
func (s *eventService) Activate(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	unlock := s.locks.LockAll(activationKey, ownerKey(ownerEvent, id))
	defer unlock()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event, err := s.events.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if !event.Active {
			event.Active = true
			if err := s.events.Save(ctx, tx, event); err != nil {
				return err
			}
		}
		return s.deactivateOthers(ctx, tx, id)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Event activated", "event_id", id)
	return s.events.GetByID(ctx, nil, id)
}

// FindActive returns the active event, or NotFound when none is flagged.
func (s *eventService) FindActive(ctx context.Context) (*models.Event, error) {
	active, err := s.events.FindWhere(ctx, nil, "active = ?", true)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, apperr.NotFound("event", "active")
	}
	if len(active) > 1 {
		s.log.Warn("More than one active event", "count", len(active))
	}
	return active[0], nil
}

func (s *eventService) AddImage(ctx context.Context, eventID uuid.UUID, title, image string) (*models.Event, error) {
	owner, _, err := s.graph.AddPhoto(ctx, EventPhotos, eventID, title, image)
	if err != nil {
		return nil, err
	}
	return owner.(*models.Event), nil
}

func (s *eventService) DeleteImage(ctx context.Context, eventID, photoID uuid.UUID) (*models.Event, error) {
	owner, err := s.graph.RemovePhoto(ctx, EventPhotos, eventID, photoID)
	if err != nil {
		return nil, err
	}
	return owner.(*models.Event), nil
}

func (s *eventService) validate(ctx context.Context, in EventInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return apperr.InvalidInput(apperr.CodeRequired, "event name is required")
	}
	if in.SpotID != nil {
		if _, err := s.spots.GetByID(ctx, nil, *in.SpotID); err != nil {
			return err
		}
	}
	return nil
}

func (s *eventService) deactivateOthers(ctx context.Context, tx *gorm.DB, keepID uuid.UUID) error {
	cleared, err := s.events.DeactivateAllExcept(ctx, tx, keepID)
	if err != nil {
		return err
	}
	if cleared > 0 {
		s.log.Debug("Deactivated previous events", "count", cleared, "active_id", keepID)
	}
	return nil
}

func applyEventInput(event *models.Event, in EventInput) {
	event.Name = strings.TrimSpace(in.Name)
	event.Day = in.Day
	event.DayString = in.DayString
	if in.Day != nil && in.DayString == "" {
		event.DayString = in.Day.Format("2006-01-02")
	}
	event.SpotID = in.SpotID
	event.Active = in.Active
}
