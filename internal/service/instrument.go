package service

import (
	"context"
	"fmt"

	"github.com/crediwise/crediwise/internal/models"
)

const (
	defaultNetwork = "Other"
	defaultColor   = "#3B82F6"
)

var validInstrumentTypes = map[string]bool{
	models.InstrumentCreditCard: true,
	models.InstrumentDebitCard:  true,
	models.InstrumentWallet:     true,
	models.InstrumentUPI:        true,
}

var validRewardTypes = map[string]bool{
	models.RewardCashback: true,
	models.RewardPoints:   true,
	models.RewardMiles:    true,
}

// CreateInstrument validates, normalizes and stores a new instrument for
// the authenticated user.
func (s *Service) CreateInstrument(ctx context.Context, inst *models.PaymentInstrument) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if err := normalizeInstrument(inst); err != nil {
		return err
	}

	inst.UserID = userID
	inst.IsActive = true
	if err := s.repo.CreateInstrument(inst); err != nil {
		return err
	}

	s.log.Infof("Instrument created for user %d: %s", userID, inst.Name)
	return nil
}

// ListInstruments returns all active instruments of the authenticated user.
func (s *Service) ListInstruments(ctx context.Context) ([]models.PaymentInstrument, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.FindActiveInstrumentsByUser(userID)
}

// GetInstrument returns one instrument of the authenticated user.
func (s *Service) GetInstrument(ctx context.Context, id int64) (*models.PaymentInstrument, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.FindInstrumentByID(id, userID)
}

// UpdateInstrument validates and saves changes to an existing instrument.
func (s *Service) UpdateInstrument(ctx context.Context, inst *models.PaymentInstrument) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if err := normalizeInstrument(inst); err != nil {
		return err
	}

	inst.UserID = userID
	if err := s.repo.UpdateInstrument(inst); err != nil {
		return err
	}

	s.log.Infof("Instrument %d updated for user %d", inst.ID, userID)
	return nil
}

// RemoveInstrument soft-deletes an instrument; history referencing it stays
// intact.
func (s *Service) RemoveInstrument(ctx context.Context, id int64) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if err := s.repo.DeactivateInstrument(id, userID); err != nil {
		return err
	}
	s.log.Infof("Instrument %d deactivated for user %d", id, userID)
	return nil
}

// normalizeInstrument applies schema defaults and rejects values outside
// the closed sets before anything reaches storage or the engine.
func normalizeInstrument(inst *models.PaymentInstrument) error {
	if inst.Name == "" {
		return fmt.Errorf("instrument name is required")
	}
	if !validInstrumentTypes[inst.Type] {
		return fmt.Errorf("invalid instrument type %q", inst.Type)
	}
	if inst.Network == "" {
		inst.Network = defaultNetwork
	}
	if inst.Color == "" {
		inst.Color = defaultColor
	}
	if inst.BillingCycleDay < 1 || inst.BillingCycleDay > 28 {
		if inst.BillingCycleDay == 0 {
			inst.BillingCycleDay = 1
		} else {
			return fmt.Errorf("billing cycle day must be between 1 and 28")
		}
	}

	for i := range inst.RewardRules {
		rule := &inst.RewardRules[i]
		if !models.IsValidCategory(string(rule.Category)) {
			return fmt.Errorf("invalid reward rule category %q", rule.Category)
		}
		if rule.RewardType == "" {
			rule.RewardType = models.RewardCashback
		}
		if !validRewardTypes[rule.RewardType] {
			return fmt.Errorf("invalid reward type %q", rule.RewardType)
		}
		if rule.RatePercent < 0 || rule.RatePercent > 100 {
			return fmt.Errorf("rate percent must be between 0 and 100")
		}
		if rule.PointValueINR == 0 {
			rule.PointValueINR = 1
		}
		if rule.PointValueINR < 0 || rule.Cap < 0 || rule.MinTransactionAmount < 0 {
			return fmt.Errorf("reward rule values must not be negative")
		}
	}

	for i := range inst.MilestoneIncentives {
		m := &inst.MilestoneIncentives[i]
		if m.SpendThreshold <= 0 {
			return fmt.Errorf("milestone spend threshold must be positive")
		}
		if m.BonusValue <= 0 {
			return fmt.Errorf("milestone bonus value must be positive")
		}
		if m.BonusType == "" {
			m.BonusType = models.RewardCashback
		}
	}
	return nil
}
