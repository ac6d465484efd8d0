package engine

import (
	"testing"

	"github.com/crediwise/crediwise/internal/models"
	"github.com/stretchr/testify/assert"
)

func testInstruments() []models.PaymentInstrument {
	return []models.PaymentInstrument{
		{
			ID:   1,
			Name: "HDFC Swiggy Card",
			RewardRules: []models.RewardRule{
				{Category: models.CategoryDining, RewardType: models.RewardCashback, RatePercent: 10, PointValueINR: 1},
			},
		},
		{
			ID:   2,
			Name: "Paytm Wallet",
			RewardRules: []models.RewardRule{
				{Category: models.CategoryGeneral, RewardType: models.RewardCashback, RatePercent: 1, PointValueINR: 1},
			},
		},
		{
			ID:   3,
			Name: "Axis Atlas",
			RewardRules: []models.RewardRule{
				{Category: models.CategoryDining, RewardType: models.RewardMiles, RatePercent: 4, PointValueINR: 2},
			},
		},
	}
}

func TestRankOrdering(t *testing.T) {
	ranked, err := Rank(testInstruments(), 1000, models.CategoryDining)
	assert.NoError(t, err)
	assert.Len(t, ranked, 3)

	// 10% cashback (100) beats 4% miles at ₹2/pt (80) beats 1% general (10).
	assert.Equal(t, "HDFC Swiggy Card", ranked[0].InstrumentName)
	assert.Equal(t, "Axis Atlas", ranked[1].InstrumentName)
	assert.Equal(t, "Paytm Wallet", ranked[2].InstrumentName)

	for i, r := range ranked {
		assert.Equal(t, i+1, r.Rank, "ranks must be dense and 1-based")
	}
}

func TestRankTotalOrder(t *testing.T) {
	ranked, err := Rank(testInstruments(), 250, models.CategoryGroceries)
	assert.NoError(t, err)

	for i := 1; i < len(ranked); i++ {
		prev, cur := ranked[i-1], ranked[i]
		if prev.EstimatedReward == cur.EstimatedReward {
			assert.LessOrEqual(t, prev.InstrumentName, cur.InstrumentName)
		} else {
			assert.Greater(t, prev.EstimatedReward, cur.EstimatedReward)
		}
	}
}

func TestRankDeterminism(t *testing.T) {
	first, err := Rank(testInstruments(), 1000, models.CategoryDining)
	assert.NoError(t, err)
	second, err := Rank(testInstruments(), 1000, models.CategoryDining)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRankZeroRewardTieBreak(t *testing.T) {
	instruments := []models.PaymentInstrument{
		{ID: 1, Name: "HDFC Card"},
		{ID: 2, Name: "Axis Card"},
	}

	ranked, err := Rank(instruments, 500, models.CategoryDining)
	assert.NoError(t, err)

	assert.Equal(t, "Axis Card", ranked[0].InstrumentName)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "HDFC Card", ranked[1].InstrumentName)
	assert.Equal(t, 2, ranked[1].Rank)
}

func TestRankInvalidInput(t *testing.T) {
	instruments := testInstruments()

	_, err := Rank(instruments, 0, models.CategoryDining)
	assert.ErrorContains(t, err, "amount must be positive")

	_, err = Rank(instruments, -50, models.CategoryDining)
	assert.ErrorContains(t, err, "amount must be positive")

	_, err = Rank(instruments, 100, models.Category("crypto"))
	assert.ErrorContains(t, err, "unknown category")

	_, err = Rank(nil, 100, models.CategoryDining)
	assert.ErrorContains(t, err, "no instruments")
}

func TestRankCarriesDisplayIdentity(t *testing.T) {
	instruments := []models.PaymentInstrument{
		{
			ID:             7,
			Name:           "ICICI Sapphiro",
			BankOrProvider: "ICICI",
			Type:           models.InstrumentCreditCard,
			Network:        "Visa",
			Color:          "#1F2937",
		},
	}

	ranked, err := Rank(instruments, 100, models.CategoryShopping)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), ranked[0].InstrumentID)
	assert.Equal(t, "ICICI", ranked[0].BankOrProvider)
	assert.Equal(t, "Visa", ranked[0].Network)
	assert.Equal(t, "#1F2937", ranked[0].Color)
}
