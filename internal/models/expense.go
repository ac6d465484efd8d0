package models

import "time"

// Expense is a recorded spend against an optional payment instrument.
type Expense struct {
	ID                      int64     `json:"id"`
	UserID                  int64     `json:"user_id"`
	Amount                  float64   `json:"amount"`
	Category                Category  `json:"category"`
	Description             string    `json:"description,omitempty"`
	MerchantName            string    `json:"merchant_name,omitempty"`
	Date                    time.Time `json:"date"`
	PaymentInstrumentID     *int64    `json:"payment_instrument_id,omitempty"`
	RecommendedInstrumentID *int64    `json:"recommended_instrument_id,omitempty"`
	RewardEarned            float64   `json:"reward_earned"`
	CreatedAt               string    `json:"created_at"`
	UpdatedAt               string    `json:"updated_at"`
}

// ExpenseFilter narrows expense listings.
type ExpenseFilter struct {
	Category     Category
	InstrumentID *int64
	StartDate    *time.Time
	EndDate      *time.Time
	Page         int
	Limit        int
}

// MonthlySummary aggregates expenses for one calendar month.
type MonthlySummary struct {
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	TotalAmount  float64 `json:"total_amount"`
	TotalRewards float64 `json:"total_rewards"`
	Count        int     `json:"count"`
}

// CategorySummary aggregates expenses for one category.
type CategorySummary struct {
	Category     Category `json:"category"`
	TotalAmount  float64  `json:"total_amount"`
	TotalRewards float64  `json:"total_rewards"`
	Count        int      `json:"count"`
}

// MerchantSummary aggregates expenses for one merchant.
type MerchantSummary struct {
	MerchantName string  `json:"merchant_name"`
	TotalAmount  float64 `json:"total_amount"`
	Count        int     `json:"count"`
}
