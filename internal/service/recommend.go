package service

import (
	"context"

	"github.com/crediwise/crediwise/internal/engine"
	"github.com/crediwise/crediwise/internal/models"
)

// Recommendation is the caller-facing result of a recommendation request.
type Recommendation struct {
	Rankings          []models.RankedInstrument `json:"rankings"`
	TopRecommendation *models.RankedInstrument  `json:"top_recommendation,omitempty"`
	Amount            float64                   `json:"amount"`
	Category          models.Category           `json:"category"`
	Message           string                    `json:"message,omitempty"`
}

// Recommend ranks the user's active instruments for a transaction. The
// ranking is logged for analytics in the background; a failed log write is
// reported but never affects the returned recommendation.
func (s *Service) Recommend(ctx context.Context, amount float64, category models.Category, merchantName string) (*Recommendation, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	instruments, err := s.repo.FindActiveInstrumentsByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(instruments) == 0 {
		return &Recommendation{
			Rankings: []models.RankedInstrument{},
			Amount:   amount,
			Category: category,
			Message:  "No payment instruments configured. Add your cards first!",
		}, nil
	}

	rankings, err := engine.Rank(instruments, amount, category)
	if err != nil {
		return nil, err
	}
	top := rankings[0]

	go func() {
		log := &models.RecommendationLog{
			UserID:            userID,
			TransactionAmount: amount,
			Category:          category,
			MerchantName:      merchantName,
			Rankings:          rankings,
			TopRecommendation: &top,
		}
		if err := s.repo.CreateRecommendationLog(log); err != nil {
			s.log.Errorf("Failed to log recommendation for user %d: %v", userID, err)
		}
	}()

	s.log.Infof("Recommendation for user %d: %s for ₹%.2f %s", userID, top.InstrumentName, amount, category)
	return &Recommendation{
		Rankings:          rankings,
		TopRecommendation: &top,
		Amount:            amount,
		Category:          category,
	}, nil
}

// RecommendationHistory lists the user's recent recommendation logs.
func (s *Service) RecommendationHistory(ctx context.Context, limit int) ([]models.RecommendationLog, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.FindRecommendationLogs(userID, limit)
}
