package models

// Overview represents total spend and reward statistics for a period.
type Overview struct {
	TotalSpend       float64 `json:"total_spend"`
	TotalRewards     float64 `json:"total_rewards"`
	TransactionCount int     `json:"transaction_count"`
	AvgTransaction   float64 `json:"avg_transaction"`
	SavingsRate      float64 `json:"savings_rate"` // TotalRewards / TotalSpend as a percentage
	PeriodDays       int     `json:"period_days"`
}

// TrendPoint represents one month of the spend/reward trend line.
type TrendPoint struct {
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	TotalAmount  float64 `json:"total_amount"`
	TotalRewards float64 `json:"total_rewards"`
	Count        int     `json:"count"`
}

// InstrumentPerformance represents realized spend and rewards per instrument.
type InstrumentPerformance struct {
	InstrumentID  int64   `json:"instrument_id"`
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Color         string  `json:"color"`
	TotalSpend    float64 `json:"total_spend"`
	TotalRewards  float64 `json:"total_rewards"`
	Count         int     `json:"count"`
	EffectiveRate float64 `json:"effective_rate"` // realized percentage, not the nominal rule rate
}

// HighSpendAlert flags a category running above its recent monthly average.
type HighSpendAlert struct {
	Category    Category `json:"category"`
	RecentTotal float64  `json:"recent_total"`
	AvgMonthly  float64  `json:"avg_monthly"`
	PctChange   float64  `json:"pct_change"`
}
