package service

import (
	"context"

	"github.com/crediwise/crediwise/internal/models"
)

// periodDays maps the period query values of the API to day counts,
// defaulting to 30 days.
func periodDays(period string) int {
	switch period {
	case "90":
		return 90
	case "365":
		return 365
	default:
		return 30
	}
}

// Overview returns spend/reward totals for the period.
func (s *Service) Overview(ctx context.Context, period string) (*models.Overview, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.Overview(userID, periodDays(period))
}

// MonthlyTrend returns the per-month trend line.
func (s *Service) MonthlyTrend(ctx context.Context, months int) ([]models.TrendPoint, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if months <= 0 {
		months = 6
	}
	return s.repo.MonthlyTrend(userID, months)
}

// CategoryBreakdown returns per-category totals for the period.
func (s *Service) CategoryBreakdown(ctx context.Context, period string) ([]models.CategorySummary, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.CategoryBreakdown(userID, periodDays(period))
}

// InstrumentPerformance returns realized spend and rewards per instrument.
func (s *Service) InstrumentPerformance(ctx context.Context, period string) ([]models.InstrumentPerformance, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.InstrumentPerformance(userID, periodDays(period))
}

// HighSpendAlerts flags categories trending above their recent average.
func (s *Service) HighSpendAlerts(ctx context.Context) ([]models.HighSpendAlert, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.HighSpendAlerts(userID)
}
