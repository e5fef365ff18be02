package services

import (
	"context"
	"math"

	"github.com/farellandr/skatefund/internal/apperr"
	"github.com/farellandr/skatefund/internal/helpers"
	"github.com/farellandr/skatefund/internal/locks"
	"github.com/farellandr/skatefund/internal/logger"
	"github.com/farellandr/skatefund/internal/models"
	"github.com/farellandr/skatefund/internal/repositories"
	"github.com/google/uuid"
)

type PledgeService interface {
	ApplyPledge(ctx context.Context, trickID uuid.UUID, amountText string) (*models.Trick, error)
}

type pledgeService struct {
	tricks repositories.TrickRepo
	locks  *locks.Keyed
	log    *logger.Logger
}

func NewPledgeService(tricks repositories.TrickRepo, keyed *locks.Keyed, baseLog *logger.Logger) PledgeService {
	return &pledgeService{
		tricks: tricks,
		locks:  keyed,
		log:    baseLog.With("service", "PledgeService"),
	}
}

func trickKey(id uuid.UUID) string { return ownerKey(memberTrick, id) }

// ApplyPledge adds amountText to the trick's running total. Pledges on the
// same trick are applied one at a time.
func (s *pledgeService) ApplyPledge(ctx context.Context, trickID uuid.UUID, amountText string) (*models.Trick, error) {
	unlock := s.locks.Lock(trickKey(trickID))
	defer unlock()

	trick, err := s.tricks.GetByID(ctx, nil, trickID)
	if err != nil {
		return nil, err
	}

	amount, err := helpers.ParseAmount(amountText)
	if err != nil {
		return nil, err
	}

	before := trick.CurrentAmount
	if amount > math.MaxInt64-before {
		return nil, apperr.InvalidInput(apperr.CodeInvalidAmount, "amount %d overflows the trick total", amount)
	}
	trick.CurrentAmount = before + amount
	if err := s.tricks.Save(ctx, nil, trick); err != nil {
		return nil, err
	}

	s.log.Debug("Pledge applied", "trick_id", trickID, "amount", amount, "before", before, "after", trick.CurrentAmount)
	return trick, nil
}
