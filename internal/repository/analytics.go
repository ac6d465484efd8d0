package repository

import (
	"fmt"

	"github.com/crediwise/crediwise/internal/models"
)

// Overview aggregates a user's spend and rewards over the last periodDays.
func (r *Repository) Overview(userID int64, periodDays int) (*models.Overview, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0), COALESCE(SUM(reward_earned), 0),
		       COUNT(*), COALESCE(AVG(amount), 0)
		FROM crediwise.expenses
		WHERE user_id = $1 AND date >= CURRENT_DATE - $2 * INTERVAL '1 day'`
	ov := &models.Overview{PeriodDays: periodDays}
	err := r.db.QueryRow(query, userID, periodDays).
		Scan(&ov.TotalSpend, &ov.TotalRewards, &ov.TransactionCount, &ov.AvgTransaction)
	if err != nil {
		return nil, fmt.Errorf("failed to query overview: %w", err)
	}
	if ov.TotalSpend > 0 {
		ov.SavingsRate = ov.TotalRewards / ov.TotalSpend * 100
	}
	return ov, nil
}

// MonthlyTrend returns the per-month spend/reward trend for the last N months.
func (r *Repository) MonthlyTrend(userID int64, months int) ([]models.TrendPoint, error) {
	query := `
		SELECT EXTRACT(YEAR FROM date)::int, EXTRACT(MONTH FROM date)::int,
		       COALESCE(SUM(amount), 0), COALESCE(SUM(reward_earned), 0), COUNT(*)
		FROM crediwise.expenses
		WHERE user_id = $1 AND date >= CURRENT_DATE - $2 * INTERVAL '1 month'
		GROUP BY 1, 2
		ORDER BY 1, 2`
	rows, err := r.db.Query(query, userID, months)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly trend: %w", err)
	}
	defer rows.Close()

	var trend []models.TrendPoint
	for rows.Next() {
		var p models.TrendPoint
		if err := rows.Scan(&p.Year, &p.Month, &p.TotalAmount, &p.TotalRewards, &p.Count); err != nil {
			return nil, fmt.Errorf("failed to scan trend point: %w", err)
		}
		trend = append(trend, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate monthly trend: %w", err)
	}
	return trend, nil
}

// CategoryBreakdown aggregates spend per category over the last periodDays.
func (r *Repository) CategoryBreakdown(userID int64, periodDays int) ([]models.CategorySummary, error) {
	query := `
		SELECT category, COALESCE(SUM(amount), 0), COALESCE(SUM(reward_earned), 0), COUNT(*)
		FROM crediwise.expenses
		WHERE user_id = $1 AND date >= CURRENT_DATE - $2 * INTERVAL '1 day'
		GROUP BY category
		ORDER BY 2 DESC`
	rows, err := r.db.Query(query, userID, periodDays)
	if err != nil {
		return nil, fmt.Errorf("failed to query category breakdown: %w", err)
	}
	defer rows.Close()

	var breakdown []models.CategorySummary
	for rows.Next() {
		var s models.CategorySummary
		if err := rows.Scan(&s.Category, &s.TotalAmount, &s.TotalRewards, &s.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category breakdown: %w", err)
		}
		breakdown = append(breakdown, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category breakdown: %w", err)
	}
	return breakdown, nil
}

// InstrumentPerformance reports realized spend and rewards per instrument
// over the last periodDays, best rewards first.
func (r *Repository) InstrumentPerformance(userID int64, periodDays int) ([]models.InstrumentPerformance, error) {
	query := `
		SELECT i.id, i.name, i.type, i.color,
		       COALESCE(SUM(e.amount), 0), COALESCE(SUM(e.reward_earned), 0), COUNT(e.id)
		FROM crediwise.expenses e
		JOIN crediwise.instruments i ON i.id = e.payment_instrument_id
		WHERE e.user_id = $1 AND e.date >= CURRENT_DATE - $2 * INTERVAL '1 day'
		GROUP BY i.id, i.name, i.type, i.color
		ORDER BY 6 DESC`
	rows, err := r.db.Query(query, userID, periodDays)
	if err != nil {
		return nil, fmt.Errorf("failed to query instrument performance: %w", err)
	}
	defer rows.Close()

	var performance []models.InstrumentPerformance
	for rows.Next() {
		var p models.InstrumentPerformance
		if err := rows.Scan(&p.InstrumentID, &p.Name, &p.Type, &p.Color,
			&p.TotalSpend, &p.TotalRewards, &p.Count); err != nil {
			return nil, fmt.Errorf("failed to scan instrument performance: %w", err)
		}
		if p.TotalSpend > 0 {
			p.EffectiveRate = p.TotalRewards / p.TotalSpend * 100
		}
		performance = append(performance, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate instrument performance: %w", err)
	}
	return performance, nil
}

// HighSpendAlerts flags categories whose last-month spend runs more than
// 20% above the average of the two prior months.
func (r *Repository) HighSpendAlerts(userID int64) ([]models.HighSpendAlert, error) {
	query := `
		WITH historical AS (
			SELECT category, SUM(amount) / 2.0 AS avg_monthly
			FROM crediwise.expenses
			WHERE user_id = $1
			  AND date >= CURRENT_DATE - INTERVAL '3 months'
			  AND date < CURRENT_DATE - INTERVAL '1 month'
			GROUP BY category
		), recent AS (
			SELECT category, SUM(amount) AS recent_total
			FROM crediwise.expenses
			WHERE user_id = $1 AND date >= CURRENT_DATE - INTERVAL '1 month'
			GROUP BY category
		)
		SELECT r.category, r.recent_total, h.avg_monthly,
		       (r.recent_total - h.avg_monthly) / h.avg_monthly * 100 AS pct_change
		FROM recent r
		JOIN historical h ON h.category = r.category
		WHERE h.avg_monthly > 0
		  AND (r.recent_total - h.avg_monthly) / h.avg_monthly * 100 > 20
		ORDER BY pct_change DESC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query high spend alerts: %w", err)
	}
	defer rows.Close()

	var alerts []models.HighSpendAlert
	for rows.Next() {
		var a models.HighSpendAlert
		if err := rows.Scan(&a.Category, &a.RecentTotal, &a.AvgMonthly, &a.PctChange); err != nil {
			return nil, fmt.Errorf("failed to scan high spend alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate high spend alerts: %w", err)
	}
	return alerts, nil
}
