package repository

import (
	"database/sql"
	"fmt"

	"github.com/crediwise/crediwise/internal/models"
)

// CreateInstrument inserts an instrument with its reward rules and
// milestones in one transaction. Rule and milestone order is preserved
// through an explicit position column.
func (r *Repository) CreateInstrument(inst *models.PaymentInstrument) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO crediwise.instruments
			(user_id, name, type, network, bank_or_provider, annual_fee, credit_limit,
			 billing_cycle_day, current_month_spend, color, notes, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err = tx.QueryRow(query,
		inst.UserID, inst.Name, inst.Type, inst.Network, inst.BankOrProvider,
		inst.AnnualFee, inst.CreditLimit, inst.BillingCycleDay, inst.CurrentMonthSpend,
		inst.Color, inst.Notes, inst.IsActive).
		Scan(&inst.ID, &inst.CreatedAt, &inst.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create instrument: %w", err)
	}

	if err := insertRules(tx, inst.ID, inst.RewardRules); err != nil {
		return err
	}
	if err := insertMilestones(tx, inst.ID, inst.MilestoneIncentives); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit instrument: %w", err)
	}
	return nil
}

func insertRules(tx *sql.Tx, instrumentID int64, rules []models.RewardRule) error {
	query := `
		INSERT INTO crediwise.reward_rules
			(instrument_id, position, category, reward_type, rate_percent, point_value_inr, cap, min_transaction_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for i, rule := range rules {
		if _, err := tx.Exec(query, instrumentID, i, rule.Category, rule.RewardType,
			rule.RatePercent, rule.PointValueINR, rule.Cap, rule.MinTransactionAmount); err != nil {
			return fmt.Errorf("failed to insert reward rule: %w", err)
		}
	}
	return nil
}

func insertMilestones(tx *sql.Tx, instrumentID int64, milestones []models.MilestoneIncentive) error {
	query := `
		INSERT INTO crediwise.milestones
			(instrument_id, position, spend_threshold, bonus_value, bonus_type, description)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for i, m := range milestones {
		if _, err := tx.Exec(query, instrumentID, i, m.SpendThreshold, m.BonusValue, m.BonusType, m.Description); err != nil {
			return fmt.Errorf("failed to insert milestone: %w", err)
		}
	}
	return nil
}

// FindActiveInstrumentsByUser retrieves all active instruments for a user,
// reward rules and milestones included, in declaration order.
func (r *Repository) FindActiveInstrumentsByUser(userID int64) ([]models.PaymentInstrument, error) {
	query := `
		SELECT id, user_id, name, type, network, bank_or_provider, annual_fee, credit_limit,
		       billing_cycle_day, current_month_spend, color, notes, is_active, created_at, updated_at
		FROM crediwise.instruments
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY created_at DESC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list instruments: %w", err)
	}
	defer rows.Close()

	var instruments []models.PaymentInstrument
	for rows.Next() {
		inst, err := scanInstrument(rows)
		if err != nil {
			return nil, err
		}
		instruments = append(instruments, *inst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate instruments: %w", err)
	}

	for i := range instruments {
		if err := r.loadRulesAndMilestones(&instruments[i]); err != nil {
			return nil, err
		}
	}
	return instruments, nil
}

// FindInstrumentByID retrieves one instrument owned by the given user.
func (r *Repository) FindInstrumentByID(id, userID int64) (*models.PaymentInstrument, error) {
	query := `
		SELECT id, user_id, name, type, network, bank_or_provider, annual_fee, credit_limit,
		       billing_cycle_day, current_month_spend, color, notes, is_active, created_at, updated_at
		FROM crediwise.instruments
		WHERE id = $1 AND user_id = $2`
	inst, err := scanInstrument(r.db.QueryRow(query, id, userID))
	if err != nil {
		return nil, err
	}
	if err := r.loadRulesAndMilestones(inst); err != nil {
		return nil, err
	}
	return inst, nil
}

var errNoInstrument = fmt.Errorf("instrument not found")

// ErrInstrumentNotFound reports whether err marks a missing instrument.
func ErrInstrumentNotFound(err error) bool {
	return err == errNoInstrument
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInstrument(row rowScanner) (*models.PaymentInstrument, error) {
	inst := &models.PaymentInstrument{}
	var notes sql.NullString
	var creditLimit sql.NullFloat64
	err := row.Scan(&inst.ID, &inst.UserID, &inst.Name, &inst.Type, &inst.Network,
		&inst.BankOrProvider, &inst.AnnualFee, &creditLimit, &inst.BillingCycleDay,
		&inst.CurrentMonthSpend, &inst.Color, &notes, &inst.IsActive,
		&inst.CreatedAt, &inst.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, errNoInstrument
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan instrument: %w", err)
	}
	inst.Notes = notes.String
	inst.CreditLimit = creditLimit.Float64
	return inst, nil
}

func (r *Repository) loadRulesAndMilestones(inst *models.PaymentInstrument) error {
	ruleQuery := `
		SELECT category, reward_type, rate_percent, point_value_inr, cap, min_transaction_amount
		FROM crediwise.reward_rules
		WHERE instrument_id = $1
		ORDER BY position`
	rows, err := r.db.Query(ruleQuery, inst.ID)
	if err != nil {
		return fmt.Errorf("failed to load reward rules: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var rule models.RewardRule
		if err := rows.Scan(&rule.Category, &rule.RewardType, &rule.RatePercent,
			&rule.PointValueINR, &rule.Cap, &rule.MinTransactionAmount); err != nil {
			return fmt.Errorf("failed to scan reward rule: %w", err)
		}
		inst.RewardRules = append(inst.RewardRules, rule)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate reward rules: %w", err)
	}

	milestoneQuery := `
		SELECT spend_threshold, bonus_value, bonus_type, description
		FROM crediwise.milestones
		WHERE instrument_id = $1
		ORDER BY position`
	mrows, err := r.db.Query(milestoneQuery, inst.ID)
	if err != nil {
		return fmt.Errorf("failed to load milestones: %w", err)
	}
	defer mrows.Close()
	for mrows.Next() {
		var m models.MilestoneIncentive
		var desc sql.NullString
		if err := mrows.Scan(&m.SpendThreshold, &m.BonusValue, &m.BonusType, &desc); err != nil {
			return fmt.Errorf("failed to scan milestone: %w", err)
		}
		m.Description = desc.String
		inst.MilestoneIncentives = append(inst.MilestoneIncentives, m)
	}
	if err := mrows.Err(); err != nil {
		return fmt.Errorf("failed to iterate milestones: %w", err)
	}
	return nil
}

// UpdateInstrument updates instrument attributes and replaces its reward
// rules and milestones with the supplied lists.
func (r *Repository) UpdateInstrument(inst *models.PaymentInstrument) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE crediwise.instruments
		SET name = $1, type = $2, network = $3, bank_or_provider = $4, annual_fee = $5,
		    credit_limit = $6, billing_cycle_day = $7, color = $8, notes = $9,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $10 AND user_id = $11
		RETURNING updated_at`
	err = tx.QueryRow(query, inst.Name, inst.Type, inst.Network, inst.BankOrProvider,
		inst.AnnualFee, inst.CreditLimit, inst.BillingCycleDay, inst.Color, inst.Notes,
		inst.ID, inst.UserID).Scan(&inst.UpdatedAt)
	if err == sql.ErrNoRows {
		return errNoInstrument
	}
	if err != nil {
		return fmt.Errorf("failed to update instrument: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM crediwise.reward_rules WHERE instrument_id = $1`, inst.ID); err != nil {
		return fmt.Errorf("failed to clear reward rules: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM crediwise.milestones WHERE instrument_id = $1`, inst.ID); err != nil {
		return fmt.Errorf("failed to clear milestones: %w", err)
	}
	if err := insertRules(tx, inst.ID, inst.RewardRules); err != nil {
		return err
	}
	if err := insertMilestones(tx, inst.ID, inst.MilestoneIncentives); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit instrument update: %w", err)
	}
	return nil
}

// DeactivateInstrument soft-deletes an instrument.
func (r *Repository) DeactivateInstrument(id, userID int64) error {
	res, err := r.db.Exec(`
		UPDATE crediwise.instruments
		SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate instrument: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deactivation: %w", err)
	}
	if affected == 0 {
		return errNoInstrument
	}
	return nil
}

// IncrementMonthSpend adds an expense amount to the instrument's running
// monthly spend.
func (r *Repository) IncrementMonthSpend(instrumentID int64, amount float64) error {
	_, err := r.db.Exec(`
		UPDATE crediwise.instruments
		SET current_month_spend = current_month_spend + $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2`, amount, instrumentID)
	if err != nil {
		return fmt.Errorf("failed to increment month spend: %w", err)
	}
	return nil
}

// CycleReset is one instrument whose billing cycle closed today.
type CycleReset struct {
	InstrumentID   int64
	InstrumentName string
	UserEmail      string
	UserName       string
	ClosedSpend    float64
}

// ResetCyclesForDay zeroes current_month_spend for instruments whose
// billing cycle closes on the given day of month and returns what was
// closed so the scheduler can send cycle summaries.
func (r *Repository) ResetCyclesForDay(day int) ([]CycleReset, error) {
	// The CTE snapshots the spend before the update so the summary carries
	// the closed value, not the freshly zeroed one.
	query := `
		WITH closed AS (
			SELECT i.id, i.name, i.current_month_spend, u.email, u.name AS user_name
			FROM crediwise.instruments i
			JOIN crediwise.users u ON u.id = i.user_id
			WHERE i.billing_cycle_day = $1 AND i.is_active = TRUE
		)
		UPDATE crediwise.instruments i
		SET current_month_spend = 0, updated_at = CURRENT_TIMESTAMP
		FROM closed c
		WHERE i.id = c.id
		RETURNING c.id, c.name, c.email, c.user_name, c.current_month_spend`
	rows, err := r.db.Query(query, day)
	if err != nil {
		return nil, fmt.Errorf("failed to reset billing cycles: %w", err)
	}
	defer rows.Close()

	var resets []CycleReset
	for rows.Next() {
		var cr CycleReset
		if err := rows.Scan(&cr.InstrumentID, &cr.InstrumentName, &cr.UserEmail, &cr.UserName, &cr.ClosedSpend); err != nil {
			return nil, fmt.Errorf("failed to scan cycle reset: %w", err)
		}
		resets = append(resets, cr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cycle resets: %w", err)
	}
	return resets, nil
}
