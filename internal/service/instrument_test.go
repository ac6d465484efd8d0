package service

import (
	"testing"

	"github.com/crediwise/crediwise/internal/models"
	"github.com/stretchr/testify/assert"
)

func validInstrument() *models.PaymentInstrument {
	return &models.PaymentInstrument{
		Name: "HDFC Millennia",
		Type: models.InstrumentCreditCard,
		RewardRules: []models.RewardRule{
			{Category: models.CategoryShopping, RatePercent: 5},
		},
		MilestoneIncentives: []models.MilestoneIncentive{
			{SpendThreshold: 10000, BonusValue: 500},
		},
	}
}

func TestNormalizeInstrumentDefaults(t *testing.T) {
	inst := validInstrument()
	assert.NoError(t, normalizeInstrument(inst))

	assert.Equal(t, defaultNetwork, inst.Network)
	assert.Equal(t, defaultColor, inst.Color)
	assert.Equal(t, 1, inst.BillingCycleDay)
	assert.Equal(t, models.RewardCashback, inst.RewardRules[0].RewardType)
	assert.Equal(t, 1.0, inst.RewardRules[0].PointValueINR)
	assert.Equal(t, models.RewardCashback, inst.MilestoneIncentives[0].BonusType)
}

func TestNormalizeInstrumentKeepsExplicitValues(t *testing.T) {
	inst := validInstrument()
	inst.Network = "Visa"
	inst.BillingCycleDay = 15
	inst.RewardRules[0].RewardType = models.RewardPoints
	inst.RewardRules[0].PointValueINR = 0.25

	assert.NoError(t, normalizeInstrument(inst))
	assert.Equal(t, "Visa", inst.Network)
	assert.Equal(t, 15, inst.BillingCycleDay)
	assert.Equal(t, 0.25, inst.RewardRules[0].PointValueINR)
}

func TestNormalizeInstrumentRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.PaymentInstrument)
		wantErr string
	}{
		{"empty name", func(i *models.PaymentInstrument) { i.Name = "" }, "name is required"},
		{"bad type", func(i *models.PaymentInstrument) { i.Type = "crypto_wallet" }, "invalid instrument type"},
		{"bad cycle day", func(i *models.PaymentInstrument) { i.BillingCycleDay = 31 }, "billing cycle day"},
		{"bad rule category", func(i *models.PaymentInstrument) { i.RewardRules[0].Category = "snacks" }, "invalid reward rule category"},
		{"bad reward type", func(i *models.PaymentInstrument) { i.RewardRules[0].RewardType = "crypto" }, "invalid reward type"},
		{"rate above 100", func(i *models.PaymentInstrument) { i.RewardRules[0].RatePercent = 150 }, "rate percent"},
		{"negative cap", func(i *models.PaymentInstrument) { i.RewardRules[0].Cap = -1 }, "must not be negative"},
		{"zero threshold", func(i *models.PaymentInstrument) { i.MilestoneIncentives[0].SpendThreshold = 0 }, "spend threshold"},
		{"zero bonus", func(i *models.PaymentInstrument) { i.MilestoneIncentives[0].BonusValue = 0 }, "bonus value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := validInstrument()
			tt.mutate(inst)
			err := normalizeInstrument(inst)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
