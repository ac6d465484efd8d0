package repository

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/crediwise/crediwise/internal/models"
)

var errNoExpense = fmt.Errorf("expense not found")

// ErrExpenseNotFound reports whether err marks a missing expense.
func ErrExpenseNotFound(err error) bool {
	return err == errNoExpense
}

// CreateExpense inserts a new expense row.
func (r *Repository) CreateExpense(exp *models.Expense) error {
	query := `
		INSERT INTO crediwise.expenses
			(user_id, amount, category, description, merchant_name, date,
			 payment_instrument_id, recommended_instrument_id, reward_earned, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, exp.UserID, exp.Amount, exp.Category, exp.Description,
		exp.MerchantName, exp.Date, exp.PaymentInstrumentID, exp.RecommendedInstrumentID, exp.RewardEarned).
		Scan(&exp.ID, &exp.CreatedAt, &exp.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// FindExpenses lists a user's expenses newest first, narrowed by the filter
// and paginated. The total row count (ignoring pagination) is also returned.
func (r *Repository) FindExpenses(userID int64, filter models.ExpenseFilter) ([]models.Expense, int, error) {
	where := "WHERE user_id = $1"
	args := []any{userID}
	if filter.Category != "" {
		args = append(args, filter.Category)
		where += " AND category = $" + strconv.Itoa(len(args))
	}
	if filter.InstrumentID != nil {
		args = append(args, *filter.InstrumentID)
		where += " AND payment_instrument_id = $" + strconv.Itoa(len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		where += " AND date >= $" + strconv.Itoa(len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		where += " AND date <= $" + strconv.Itoa(len(args))
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM crediwise.expenses " + where
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(`
		SELECT id, user_id, amount, category, description, merchant_name, date,
		       payment_instrument_id, recommended_instrument_id, reward_earned, created_at, updated_at
		FROM crediwise.expenses %s
		ORDER BY date DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		exp, err := scanExpense(rows)
		if err != nil {
			return nil, 0, err
		}
		expenses = append(expenses, *exp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, total, nil
}

// FindExpenseByID retrieves one expense owned by the given user.
func (r *Repository) FindExpenseByID(id, userID int64) (*models.Expense, error) {
	query := `
		SELECT id, user_id, amount, category, description, merchant_name, date,
		       payment_instrument_id, recommended_instrument_id, reward_earned, created_at, updated_at
		FROM crediwise.expenses
		WHERE id = $1 AND user_id = $2`
	return scanExpense(r.db.QueryRow(query, id, userID))
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	exp := &models.Expense{}
	var description, merchant sql.NullString
	var instrumentID, recommendedID sql.NullInt64
	err := row.Scan(&exp.ID, &exp.UserID, &exp.Amount, &exp.Category, &description,
		&merchant, &exp.Date, &instrumentID, &recommendedID, &exp.RewardEarned,
		&exp.CreatedAt, &exp.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, errNoExpense
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan expense: %w", err)
	}
	exp.Description = description.String
	exp.MerchantName = merchant.String
	if instrumentID.Valid {
		exp.PaymentInstrumentID = &instrumentID.Int64
	}
	if recommendedID.Valid {
		exp.RecommendedInstrumentID = &recommendedID.Int64
	}
	return exp, nil
}

// UpdateExpense updates a user's expense.
func (r *Repository) UpdateExpense(exp *models.Expense) error {
	query := `
		UPDATE crediwise.expenses
		SET amount = $1, category = $2, description = $3, merchant_name = $4, date = $5,
		    payment_instrument_id = $6, reward_earned = $7, updated_at = CURRENT_TIMESTAMP
		WHERE id = $8 AND user_id = $9
		RETURNING updated_at`
	err := r.db.QueryRow(query, exp.Amount, exp.Category, exp.Description, exp.MerchantName,
		exp.Date, exp.PaymentInstrumentID, exp.RewardEarned, exp.ID, exp.UserID).
		Scan(&exp.UpdatedAt)
	if err == sql.ErrNoRows {
		return errNoExpense
	}
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return nil
}

// DeleteExpense removes a user's expense.
func (r *Repository) DeleteExpense(id, userID int64) error {
	res, err := r.db.Exec(`DELETE FROM crediwise.expenses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deletion: %w", err)
	}
	if affected == 0 {
		return errNoExpense
	}
	return nil
}

// MonthlySummaries aggregates the last N months of expenses per month.
func (r *Repository) MonthlySummaries(userID int64, months int) ([]models.MonthlySummary, error) {
	query := `
		SELECT EXTRACT(YEAR FROM date)::int, EXTRACT(MONTH FROM date)::int,
		       COALESCE(SUM(amount), 0), COALESCE(SUM(reward_earned), 0), COUNT(*)
		FROM crediwise.expenses
		WHERE user_id = $1 AND date >= CURRENT_DATE - $2 * INTERVAL '1 month'
		GROUP BY 1, 2
		ORDER BY 1, 2`
	rows, err := r.db.Query(query, userID, months)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly summary: %w", err)
	}
	defer rows.Close()

	var summaries []models.MonthlySummary
	for rows.Next() {
		var s models.MonthlySummary
		if err := rows.Scan(&s.Year, &s.Month, &s.TotalAmount, &s.TotalRewards, &s.Count); err != nil {
			return nil, fmt.Errorf("failed to scan monthly summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate monthly summary: %w", err)
	}
	return summaries, nil
}

// CategorySummaries aggregates expenses per category, biggest spend first.
func (r *Repository) CategorySummaries(userID int64, filter models.ExpenseFilter) ([]models.CategorySummary, error) {
	where := "WHERE user_id = $1"
	args := []any{userID}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		where += " AND date >= $" + strconv.Itoa(len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		where += " AND date <= $" + strconv.Itoa(len(args))
	}
	query := `
		SELECT category, COALESCE(SUM(amount), 0), COALESCE(SUM(reward_earned), 0), COUNT(*)
		FROM crediwise.expenses ` + where + `
		GROUP BY category
		ORDER BY 2 DESC`
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query category summary: %w", err)
	}
	defer rows.Close()

	var summaries []models.CategorySummary
	for rows.Next() {
		var s models.CategorySummary
		if err := rows.Scan(&s.Category, &s.TotalAmount, &s.TotalRewards, &s.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category summary: %w", err)
	}
	return summaries, nil
}

// TopMerchants lists merchants by total spend.
func (r *Repository) TopMerchants(userID int64, limit int) ([]models.MerchantSummary, error) {
	query := `
		SELECT merchant_name, COALESCE(SUM(amount), 0), COUNT(*)
		FROM crediwise.expenses
		WHERE user_id = $1 AND merchant_name IS NOT NULL AND merchant_name <> ''
		GROUP BY merchant_name
		ORDER BY 2 DESC
		LIMIT $2`
	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top merchants: %w", err)
	}
	defer rows.Close()

	var merchants []models.MerchantSummary
	for rows.Next() {
		var m models.MerchantSummary
		if err := rows.Scan(&m.MerchantName, &m.TotalAmount, &m.Count); err != nil {
			return nil, fmt.Errorf("failed to scan merchant summary: %w", err)
		}
		merchants = append(merchants, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate top merchants: %w", err)
	}
	return merchants, nil
}
