package services

import (
	"context"
	"strings"

	"github.com/farellandr/skatefund/internal/apperr"
	"github.com/farellandr/skatefund/internal/locks"
	"github.com/farellandr/skatefund/internal/logger"
	"github.com/farellandr/skatefund/internal/models"
	"github.com/farellandr/skatefund/internal/repositories"
	"github.com/google/uuid"
)

type SpotInput struct {
	ID          *uuid.UUID
	Name        string
	ImagePath   string
	Description string
}

type SpotService interface {
	Create(ctx context.Context, in SpotInput) (*models.Spot, error)
	Update(ctx context.Context, in SpotInput) (*models.Spot, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Spot, error)
	List(ctx context.Context) ([]*models.Spot, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddImage(ctx context.Context, spotID uuid.UUID, title, image string) (*models.Spot, error)
	DeleteImage(ctx context.Context, spotID, photoID uuid.UUID) (*models.Spot, error)
}

type spotService struct {
	spots repositories.SpotRepo
	graph GraphService
	locks *locks.Keyed
	log   *logger.Logger
}

func NewSpotService(spots repositories.SpotRepo, graph GraphService, keyed *locks.Keyed, baseLog *logger.Logger) SpotService {
	return &spotService{
		spots: spots,
		graph: graph,
		locks: keyed,
		log:   baseLog.With("service", "SpotService"),
	}
}

func (s *spotService) Create(ctx context.Context, in SpotInput) (*models.Spot, error) {
	if in.ID != nil {
		return nil, apperr.PreconditionFailed(apperr.CodeIDExists, "a new spot cannot already have an ID")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.InvalidInput(apperr.CodeRequired, "spot name is required")
	}

	spot := &models.Spot{}
	applySpotInput(spot, in)
	if err := s.spots.Create(ctx, nil, spot); err != nil {
		return nil, err
	}
	s.log.Info("Spot created", "spot_id", spot.ID)
	return spot, nil
}

func (s *spotService) Update(ctx context.Context, in SpotInput) (*models.Spot, error) {
	if in.ID == nil {
		return nil, apperr.PreconditionFailed(apperr.CodeIDNull, "a spot update needs an ID")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.InvalidInput(apperr.CodeRequired, "spot name is required")
	}

	unlock := s.locks.Lock(ownerKey(ownerSpot, *in.ID))
	defer unlock()

	spot, err := s.spots.GetByID(ctx, nil, *in.ID)
	if err != nil {
		return nil, err
	}
	applySpotInput(spot, in)
	if err := s.spots.Save(ctx, nil, spot); err != nil {
		return nil, err
	}
	return spot, nil
}

func (s *spotService) Get(ctx context.Context, id uuid.UUID) (*models.Spot, error) {
	return s.spots.GetByID(ctx, nil, id)
}

func (s *spotService) List(ctx context.Context) ([]*models.Spot, error) {
	return s.spots.FindAll(ctx, nil)
}

func (s *spotService) Delete(ctx context.Context, id uuid.UUID) error {
	unlock := s.locks.Lock(ownerKey(ownerSpot, id))
	defer unlock()

	deleted, err := s.spots.DeleteByID(ctx, nil, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("spot", id)
	}
	return nil
}

func (s *spotService) AddImage(ctx context.Context, spotID uuid.UUID, title, image string) (*models.Spot, error) {
	owner, _, err := s.graph.AddPhoto(ctx, SpotPhotos, spotID, title, image)
	if err != nil {
		return nil, err
	}
	return owner.(*models.Spot), nil
}

func (s *spotService) DeleteImage(ctx context.Context, spotID, photoID uuid.UUID) (*models.Spot, error) {
	owner, err := s.graph.RemovePhoto(ctx, SpotPhotos, spotID, photoID)
	if err != nil {
		return nil, err
	}
	return owner.(*models.Spot), nil
}

func applySpotInput(spot *models.Spot, in SpotInput) {
	spot.Name = strings.TrimSpace(in.Name)
	spot.ImagePath = strings.TrimSpace(in.ImagePath)
	spot.Description = in.Description
}
