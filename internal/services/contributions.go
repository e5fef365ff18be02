package services

import (
	"context"

	"github.com/farellandr/skatefund/internal/helpers"
	"github.com/farellandr/skatefund/internal/logger"
	"github.com/farellandr/skatefund/internal/models"
	"github.com/farellandr/skatefund/internal/repositories"
	"github.com/google/uuid"
)

// ContributionForm is one submission of the public pledge form. FanID names
// an existing contributor; otherwise the identity fields describe a new one.
type ContributionForm struct {
	TrickID  uuid.UUID
	Amount   string
	FanID    *uuid.UUID
	FullName string
	Phone    string
	Login    string
	Email    string
}

type ContributionResult struct {
	Contributor *Contributor  `json:"contributor"`
	Trick       *models.Trick `json:"trick"`
}

type ContributionService interface {
	Contribute(ctx context.Context, form ContributionForm) (*ContributionResult, error)
}

type contributionService struct {
	tricks   repositories.TrickRepo
	identity IdentityService
	pledges  PledgeService
	log      *logger.Logger
}

func NewContributionService(tricks repositories.TrickRepo, identity IdentityService, pledges PledgeService, baseLog *logger.Logger) ContributionService {
	return &contributionService{
		tricks:   tricks,
		identity: identity,
		pledges:  pledges,
		log:      baseLog.With("service", "ContributionService"),
	}
}

// Contribute resolves the contributor and applies the pledge. The amount and
// the trick are checked first so a rejected form never provisions a fan.
func (s *contributionService) Contribute(ctx context.Context, form ContributionForm) (*ContributionResult, error) {
	if _, err := helpers.ParseAmount(form.Amount); err != nil {
		return nil, err
	}
	if _, err := s.tricks.GetByID(ctx, nil, form.TrickID); err != nil {
		return nil, err
	}

	contributor, err := s.identity.ResolveContributor(ctx, ContributorRequest{
		ExistingID: form.FanID,
		FullName:   form.FullName,
		Phone:      form.Phone,
		Login:      form.Login,
		Email:      form.Email,
	})
	if err != nil {
		return nil, err
	}

	trick, err := s.pledges.ApplyPledge(ctx, form.TrickID, form.Amount)
	if err != nil {
		return nil, err
	}

	s.log.Info("Contribution recorded", "trick_id", trick.ID, "contributor_id", contributor.ID, "current_amount", trick.CurrentAmount)
	return &ContributionResult{Contributor: contributor, Trick: trick}, nil
}
