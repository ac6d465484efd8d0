package engine

import (
	"testing"

	"github.com/crediwise/crediwise/internal/models"
	"github.com/stretchr/testify/assert"
)

func diningCard(spend float64) *models.PaymentInstrument {
	return &models.PaymentInstrument{
		ID:   1,
		Name: "HDFC Regalia",
		Type: models.InstrumentCreditCard,
		RewardRules: []models.RewardRule{
			{
				Category:      models.CategoryDining,
				RewardType:    models.RewardCashback,
				RatePercent:   5,
				PointValueINR: 1,
				Cap:           500,
			},
		},
		CurrentMonthSpend: spend,
		IsActive:          true,
	}
}

func TestScoreFullReward(t *testing.T) {
	result := Score(diningCard(9000), 850, models.CategoryDining)

	assert.InDelta(t, 42.50, result.EstimatedReward, 0.001)
	assert.Equal(t, "5%", result.EffectiveRate)
	assert.False(t, result.CapReached)
	assert.False(t, result.MinTxFailed)
	assert.Empty(t, result.MilestoneAlert)
	assert.Equal(t, "5% cashback on Dining. Est. ₹42.50 back.", result.Explanation)
	assert.NotNil(t, result.AppliedRule)
}

func TestScorePartialRewardNearCap(t *testing.T) {
	// Already earned ≈ 495, raw 42.50, cap 500 → clamped to 5.00.
	result := Score(diningCard(9900), 850, models.CategoryDining)

	assert.InDelta(t, 5.00, result.EstimatedReward, 0.001)
	assert.False(t, result.CapReached)
	assert.Contains(t, result.Explanation, "Partial reward")
	assert.Contains(t, result.Explanation, "₹5.00")
}

func TestScoreCapReached(t *testing.T) {
	// Spend of 10000 at 5% has already exhausted the ₹500 cap.
	result := Score(diningCard(10000), 850, models.CategoryDining)

	assert.Zero(t, result.EstimatedReward)
	assert.True(t, result.CapReached)
	assert.Equal(t, "Reward cap of ₹500 reached this month. No additional cashback earned.", result.Explanation)
}

func TestScoreCapMonotonicity(t *testing.T) {
	prev := Score(diningCard(0), 850, models.CategoryDining).EstimatedReward
	for spend := 500.0; spend <= 12000; spend += 500 {
		reward := Score(diningCard(spend), 850, models.CategoryDining).EstimatedReward
		assert.LessOrEqual(t, reward, prev, "reward increased when spend rose to %g", spend)
		prev = reward
	}
}

func TestScoreMinTransactionBoundary(t *testing.T) {
	inst := &models.PaymentInstrument{
		Name: "Amazon Pay Wallet",
		Type: models.InstrumentWallet,
		RewardRules: []models.RewardRule{
			{Category: models.CategoryShopping, RewardType: models.RewardCashback, RatePercent: 2, PointValueINR: 1, MinTransactionAmount: 100},
		},
	}

	atMin := Score(inst, 100, models.CategoryShopping)
	assert.False(t, atMin.MinTxFailed, "amount equal to the minimum must qualify")
	assert.InDelta(t, 2.0, atMin.EstimatedReward, 0.001)

	belowMin := Score(inst, 99, models.CategoryShopping)
	assert.True(t, belowMin.MinTxFailed)
	assert.Zero(t, belowMin.EstimatedReward)
	assert.Equal(t, "Minimum transaction of ₹100 required. No reward for this transaction.", belowMin.Explanation)
}

func TestScoreGeneralFallback(t *testing.T) {
	inst := &models.PaymentInstrument{
		Name: "SBI Card",
		RewardRules: []models.RewardRule{
			{Category: models.CategoryGeneral, RewardType: models.RewardCashback, RatePercent: 1, PointValueINR: 1},
		},
	}

	result := Score(inst, 1000, models.CategoryFuel)
	assert.InDelta(t, 10.0, result.EstimatedReward, 0.001)
	assert.Equal(t, models.CategoryGeneral, result.AppliedRule.Category)
}

func TestScoreNoRuleConfigured(t *testing.T) {
	inst := &models.PaymentInstrument{Name: "Bare UPI", Type: models.InstrumentUPI}

	result := Score(inst, 1000, models.CategoryDining)
	assert.Zero(t, result.EstimatedReward)
	assert.Equal(t, "0%", result.EffectiveRate)
	assert.False(t, result.CapReached)
	assert.False(t, result.MinTxFailed)
	assert.Nil(t, result.AppliedRule)
	assert.Equal(t, "No reward rule configured for dining or general category.", result.Explanation)
}

func TestScoreFirstDeclaredRuleWins(t *testing.T) {
	inst := &models.PaymentInstrument{
		Name: "Overlap Card",
		RewardRules: []models.RewardRule{
			{Category: models.CategoryDining, RewardType: models.RewardCashback, RatePercent: 5, PointValueINR: 1},
			{Category: models.CategoryDining, RewardType: models.RewardCashback, RatePercent: 10, PointValueINR: 1},
		},
	}

	result := Score(inst, 100, models.CategoryDining)
	assert.InDelta(t, 5.0, result.EstimatedReward, 0.001)
}

func TestScorePointsExplanation(t *testing.T) {
	inst := &models.PaymentInstrument{
		Name: "Axis Magnus",
		RewardRules: []models.RewardRule{
			{Category: models.CategoryTravel, RewardType: models.RewardPoints, RatePercent: 12, PointValueINR: 0.25},
		},
	}

	result := Score(inst, 1000, models.CategoryTravel)
	assert.InDelta(t, 30.0, result.EstimatedReward, 0.001)
	assert.Equal(t, "12% points on Travel (₹0.25/pt). Est. ₹30.00 value.", result.Explanation)
}

func TestScoreMilestoneCrossing(t *testing.T) {
	inst := diningCard(9000)
	inst.RewardRules[0].Cap = 0 // uncapped, isolate the milestone arithmetic
	inst.MilestoneIncentives = []models.MilestoneIncentive{
		{SpendThreshold: 10000, BonusValue: 500, BonusType: "cashback"},
	}

	result := Score(inst, 1500, models.CategoryDining)

	// Base 5% of 1500 = 75, plus the ₹500 crossing bonus.
	assert.InDelta(t, 575.0, result.EstimatedReward, 0.001)
	assert.Equal(t, "This transaction unlocks a ₹500 milestone bonus!", result.MilestoneAlert)
}

func TestScoreMilestoneApproaching(t *testing.T) {
	inst := diningCard(8000)
	inst.MilestoneIncentives = []models.MilestoneIncentive{
		{SpendThreshold: 10000, BonusValue: 500},
	}

	result := Score(inst, 500, models.CategoryDining)

	// After the transaction the gap is 1500, exactly 15% of the threshold.
	assert.Equal(t, "Spend ₹1500 more to unlock a ₹500 bonus!", result.MilestoneAlert)
	assert.InDelta(t, 25.0, result.EstimatedReward, 0.001, "approaching must not add the bonus")
}

func TestScoreMilestoneNearestApproachingWins(t *testing.T) {
	inst := diningCard(8100)
	inst.MilestoneIncentives = []models.MilestoneIncentive{
		{SpendThreshold: 10000, BonusValue: 500},
		{SpendThreshold: 9000, BonusValue: 200},
	}

	result := Score(inst, 500, models.CategoryDining)

	// Both thresholds are within 15%; the closer one (9000, gap 400) wins
	// regardless of declaration order.
	assert.Equal(t, "Spend ₹400 more to unlock a ₹200 bonus!", result.MilestoneAlert)
}

func TestScoreMilestoneCrossingBeatsApproaching(t *testing.T) {
	inst := diningCard(9000)
	inst.RewardRules[0].Cap = 0
	inst.MilestoneIncentives = []models.MilestoneIncentive{
		{SpendThreshold: 11000, BonusValue: 300},
		{SpendThreshold: 10000, BonusValue: 500},
	}

	result := Score(inst, 1500, models.CategoryDining)

	assert.Equal(t, "This transaction unlocks a ₹500 milestone bonus!", result.MilestoneAlert)
	assert.InDelta(t, 575.0, result.EstimatedReward, 0.001)
}

func TestScoreMilestoneBonusOnTopOfCap(t *testing.T) {
	inst := diningCard(10000) // cap already exhausted
	inst.MilestoneIncentives = []models.MilestoneIncentive{
		{SpendThreshold: 11000, BonusValue: 500},
	}

	result := Score(inst, 1500, models.CategoryDining)

	assert.True(t, result.CapReached)
	assert.InDelta(t, 500.0, result.EstimatedReward, 0.001, "milestone bonus is an independent reward stream")
}

func TestScoreDoesNotMutateInstrument(t *testing.T) {
	inst := diningCard(9000)
	Score(inst, 850, models.CategoryDining)
	assert.Equal(t, 9000.0, inst.CurrentMonthSpend)
	assert.Len(t, inst.RewardRules, 1)
}
