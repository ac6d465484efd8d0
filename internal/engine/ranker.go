package engine

import (
	"fmt"
	"sort"

	"github.com/crediwise/crediwise/internal/models"
)

// Rank scores every instrument for the transaction and returns them in a
// deterministic total order: estimated reward descending, instrument name
// ascending on ties, with dense 1-based ranks. Input is validated up front
// so invalid calls fail fast instead of computing nonsense.
func Rank(instruments []models.PaymentInstrument, amount float64, category models.Category) ([]models.RankedInstrument, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("transaction amount must be positive, got %g", amount)
	}
	if !models.IsValidCategory(string(category)) {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	if len(instruments) == 0 {
		return nil, fmt.Errorf("no instruments to rank")
	}

	ranked := make([]models.RankedInstrument, 0, len(instruments))
	for i := range instruments {
		inst := &instruments[i]
		ranked = append(ranked, models.RankedInstrument{
			InstrumentID:   inst.ID,
			InstrumentName: inst.Name,
			BankOrProvider: inst.BankOrProvider,
			Type:           inst.Type,
			Network:        inst.Network,
			Color:          inst.Color,
			ScoringResult:  Score(inst, amount, category),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].EstimatedReward != ranked[j].EstimatedReward {
			return ranked[i].EstimatedReward > ranked[j].EstimatedReward
		}
		return ranked[i].InstrumentName < ranked[j].InstrumentName
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked, nil
}
