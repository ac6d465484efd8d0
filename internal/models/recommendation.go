package models

// ScoringResult is the engine's valuation of one instrument for one
// transaction. EstimatedReward is in INR and already includes any milestone
// bonus unlocked by the transaction.
type ScoringResult struct {
	EstimatedReward float64     `json:"estimated_reward"`
	EffectiveRate   string      `json:"effective_rate"`
	CapReached      bool        `json:"cap_reached"`
	MinTxFailed     bool        `json:"min_tx_failed"`
	MilestoneAlert  string      `json:"milestone_alert,omitempty"`
	Explanation     string      `json:"explanation"`
	AppliedRule     *RewardRule `json:"applied_rule,omitempty"`
}

// RankedInstrument is one row of a recommendation: a scoring result plus
// the instrument's display identity and its 1-based rank.
type RankedInstrument struct {
	InstrumentID   int64  `json:"instrument_id"`
	InstrumentName string `json:"instrument_name"`
	BankOrProvider string `json:"bank_or_provider"`
	Type           string `json:"type"`
	Network        string `json:"network"`
	Color          string `json:"color"`
	ScoringResult
	Rank int `json:"rank"`
}

// RecommendationLog records one ranking for later analytics. Persisting it
// is fire-and-forget; failures never affect the returned recommendation.
type RecommendationLog struct {
	ID                int64              `json:"id"`
	UserID            int64              `json:"user_id"`
	TransactionAmount float64            `json:"transaction_amount"`
	Category          Category           `json:"category"`
	MerchantName      string             `json:"merchant_name,omitempty"`
	Rankings          []RankedInstrument `json:"rankings"`
	TopRecommendation *RankedInstrument  `json:"top_recommendation,omitempty"`
	CreatedAt         string             `json:"created_at"`
}
