package models

// Reward type labels for a reward rule.
const (
	RewardCashback = "cashback"
	RewardPoints   = "points"
	RewardMiles    = "miles"
)

// Instrument type labels.
const (
	InstrumentCreditCard = "credit_card"
	InstrumentDebitCard  = "debit_card"
	InstrumentWallet     = "wallet"
	InstrumentUPI        = "upi"
)

// RewardRule converts spend in one category into reward value. Rules are
// immutable inputs to scoring; the first declared rule for a category wins
// when a user configures overlapping rules.
type RewardRule struct {
	Category             Category `json:"category"`
	RewardType           string   `json:"reward_type"`
	RatePercent          float64  `json:"rate_percent"`
	PointValueINR        float64  `json:"point_value_inr"`        // 1 point = ₹1 by default (cashback)
	Cap                  float64  `json:"cap"`                    // monthly cap in INR, 0 = unlimited
	MinTransactionAmount float64  `json:"min_transaction_amount"` // inclusive lower bound
}

// MilestoneIncentive is a cumulative-monthly-spend threshold that unlocks
// a one-time bonus. Milestones are evaluated in declaration order.
type MilestoneIncentive struct {
	SpendThreshold float64 `json:"spend_threshold"`
	BonusValue     float64 `json:"bonus_value"`
	BonusType      string  `json:"bonus_type"`
	Description    string  `json:"description"`
}

// PaymentInstrument is a card, wallet or UPI handle with its reward
// configuration. CurrentMonthSpend is maintained by the expense layer and
// reset by the billing-cycle scheduler; scoring only reads it.
type PaymentInstrument struct {
	ID                  int64                `json:"id"`
	UserID              int64                `json:"user_id"`
	Name                string               `json:"name"`
	Type                string               `json:"type"`
	Network             string               `json:"network"`
	BankOrProvider      string               `json:"bank_or_provider"`
	RewardRules         []RewardRule         `json:"reward_rules"`
	MilestoneIncentives []MilestoneIncentive `json:"milestone_incentives"`
	AnnualFee           float64              `json:"annual_fee"`
	CreditLimit         float64              `json:"credit_limit"`
	BillingCycleDay     int                  `json:"billing_cycle_day"`
	CurrentMonthSpend   float64              `json:"current_month_spend"`
	Color               string               `json:"color"`
	Notes               string               `json:"notes,omitempty"`
	IsActive            bool                 `json:"is_active"`
	CreatedAt           string               `json:"created_at"`
	UpdatedAt           string               `json:"updated_at"`
}
